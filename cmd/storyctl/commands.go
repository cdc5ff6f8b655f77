package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/DjordjeVuckovic/story-hunter/internal/reader"
	"github.com/DjordjeVuckovic/story-hunter/internal/router"
	"github.com/DjordjeVuckovic/story-hunter/internal/search"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/story-hunter/pkg/config/env"
	"github.com/DjordjeVuckovic/story-hunter/pkg/pagination"
	"github.com/urfave/cli/v3"
)

const defaultDotEnvPath = "cmd/storyctl/.env"

// backendFactory is swapped in tests to avoid real storage.
var backendFactory = func(ctx context.Context, envName, envPath string) (*factory.Backend, error) {
	if err := env.LoadDotEnv(envName, envPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	cfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}
	return factory.NewBackend(ctx, cfg)
}

func envFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "env",
			Usage:   "environment name; a missing .env file is an error only for local",
			Sources: cli.EnvVars("ENV"),
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "path of the .env file",
			Value: defaultDotEnvPath,
		},
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "storyctl",
		Usage: "operate the story catalog: seed it and query it like the API does",
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "load genres and stories from a YAML catalog into the configured storage",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "YAML catalog path",
						Required: true,
					},
				}, envFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return seedAction(ctx, cmd, out)
				},
			},
			{
				Name:  "search",
				Usage: "run a story search and print the page as JSON",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "search",
						Usage: "case-insensitive title substring",
					},
					&cli.StringFlag{
						Name:  "genres",
						Usage: "comma-separated genre ids",
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "page number",
						Value: pagination.PageDefault,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "page size",
						Value: pagination.PageDefaultSize,
					},
				}, envFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return searchAction(ctx, cmd, out)
				},
			},
			{
				Name:  "genres",
				Usage: "print every genre as JSON",
				Flags: envFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return genresAction(ctx, cmd, out)
				},
			},
		},
	}
}

func openBackend(ctx context.Context, cmd *cli.Command) (*factory.Backend, error) {
	backend, err := backendFactory(ctx, cmd.String("env"), cmd.String("env-file"))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return backend, nil
}

func seedAction(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	path := cmd.String("file")
	catalog, err := reader.LoadCatalogFile(path, true)
	if err != nil {
		return fmt.Errorf("catalog %s rejected: %w", path, err)
	}

	backend, err := openBackend(ctx, cmd)
	if err != nil {
		return err
	}
	defer backend.Close()

	if err := backend.Indexer.SaveCatalog(ctx, *catalog); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	_, err = fmt.Fprintf(out, "seeded %d genres and %d stories into %s\n",
		len(catalog.Genres), len(catalog.Stories), backend.Type)
	return err
}

func searchAction(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	backend, err := openBackend(ctx, cmd)
	if err != nil {
		return err
	}
	defer backend.Close()

	req := search.ParseRequest(
		strconv.Itoa(cmd.Int("page")),
		strconv.Itoa(cmd.Int("limit")),
		cmd.String("search"),
		cmd.String("genres"),
	)

	res, err := search.NewPlanner(backend.Stories).Search(ctx, req)
	if err != nil {
		return err
	}
	return writeJSON(out, res)
}

func genresAction(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	backend, err := openBackend(ctx, cmd)
	if err != nil {
		return err
	}
	defer backend.Close()

	genres, err := search.NewGenreLister(backend.Genres).List(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, router.GenresResponse{Genres: genres})
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
