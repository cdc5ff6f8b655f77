package factory

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/pg"
	"github.com/DjordjeVuckovic/story-hunter/pkg/utils"
)

type InMemConfig struct {
	CatalogPath string
}

type StorageConfig struct {
	storage.Type
	Pg    *pg.PoolConfig
	Es    *es.ClientConfig
	InMem *InMemConfig
}

func LoadEnv() (*StorageConfig, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Error("STORAGE_TYPE environment variable is not set")
		return nil, fmt.Errorf("STORAGE_TYPE environment variable is not set")
	}
	if storageType != storage.ES && storageType != storage.PG && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			storage.SupportedTypes)
	}

	cfg := &StorageConfig{Type: storageType}

	switch storageType {
	case storage.ES:
		esCfg := &es.ClientConfig{
			Addresses:  utils.SplitList(os.Getenv("ES_ADDRESSES"), ","),
			StoryIndex: os.Getenv("ES_STORY_INDEX"),
			GenreIndex: os.Getenv("ES_GENRE_INDEX"),
			Username:   os.Getenv("ES_USERNAME"),
			Password:   os.Getenv("ES_PASSWORD"),
		}
		if len(esCfg.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses are missing")
		}
		cfg.Es = esCfg

	case storage.PG:
		connStr := os.Getenv("PG_CONNECTION_STRING")
		if connStr == "" {
			connStr = connStringFromParts()
		}
		if connStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set: use PG_CONNECTION_STRING or DB_HOST/DB_NAME/DB_USER")
		}

		maxConns, err := intEnv("PG_MAX_CONNS", 0)
		if err != nil {
			return nil, err
		}
		timeoutSeconds, err := intEnv("QUERY_TIMEOUT_SECONDS", 0)
		if err != nil {
			return nil, err
		}

		cfg.Pg = &pg.PoolConfig{
			ConnStr:      connStr,
			MaxConns:     int32(maxConns),
			QueryTimeout: time.Duration(timeoutSeconds) * time.Second,
		}

	case storage.InMem:
		cfg.InMem = &InMemConfig{CatalogPath: os.Getenv("IN_MEM_CATALOG_PATH")}
	}

	return cfg, nil
}

// connStringFromParts builds a postgres URL from DB_USER, DB_PASSWORD, DB_HOST,
// DB_PORT and DB_NAME. It returns "" unless host and database are set.
func connStringFromParts() string {
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	if host == "" || name == "" {
		return ""
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}
	if user := os.Getenv("DB_USER"); user != "" {
		if password := os.Getenv("DB_PASSWORD"); password != "" {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value %q: expected a non-negative integer", key, raw)
	}
	return n, nil
}
