package testing

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const PGImage = "postgres:17.5"

const truncateCatalogSQL = "TRUNCATE TABLE stories, genres RESTART IDENTITY CASCADE"

// PGContainer is a disposable PostgreSQL holding the story catalog schema.
type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

type PGConfig struct {
	Database string
	Username string
	Password string
}

func DefaultPGConfig() PGConfig {
	return PGConfig{
		Database: "story_test_db",
		Username: "test",
		Password: "test",
	}
}

// NewPGContainer starts PostgreSQL with every db/migrations/*.up.sql run as an
// init script, in file name order.
func NewPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	migrations, err := migrationScripts()
	if err != nil {
		return nil, err
	}

	pgContainer, err := postgres.Run(ctx,
		PGImage,
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		postgres.WithInitScripts(migrations...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(pgContainer)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PGContainer{
		Container:  pgContainer,
		ConnString: connStr,
	}, nil
}

// ResetCatalog empties the genres and stories tables and restarts their ids.
func (c *PGContainer) ResetCatalog(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, c.ConnString)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres container: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, truncateCatalogSQL); err != nil {
		return fmt.Errorf("failed to reset catalog: %w", err)
	}
	return nil
}

func (c *PGContainer) Terminate() error {
	return testcontainers.TerminateContainer(c.Container)
}

func migrationScripts() ([]string, error) {
	_, b, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(b), "..", "..", "db", "migrations")

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to find migration files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no migrations found in " + migrationsDir)
	}
	sort.Strings(files)
	return files, nil
}
