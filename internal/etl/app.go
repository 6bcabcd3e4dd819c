// Package etl wires one ETL run: it builds the Trello client, the
// staging store, the run log and the database connections from
// configuration, and hands them to the pipeline.
package etl

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/trelloetl/internal/etl/config"
	"github.com/dmitrijs2005/trelloetl/internal/extract"
	"github.com/dmitrijs2005/trelloetl/internal/logging"
	"github.com/dmitrijs2005/trelloetl/internal/pipeline"
	"github.com/dmitrijs2005/trelloetl/internal/postgres"
	"github.com/dmitrijs2005/trelloetl/internal/runlog"
	"github.com/dmitrijs2005/trelloetl/internal/staging"
	"github.com/dmitrijs2005/trelloetl/internal/trello"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) *App {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return &App{config: c, logger: logging.NewSlogLogger(sl)}
}

// organizations converts the configured organizations to the
// extractor's input.
func organizations(c *config.Config) []extract.Organization {
	orgs := make([]extract.Organization, 0, len(c.Organizations))
	for _, o := range c.Organizations {
		orgs = append(orgs, extract.Organization{
			ID:      o.OrgID,
			Name:    o.OrgName,
			Include: o.Include,
		})
	}
	return orgs
}

// Run executes one pipeline pass and releases every client it opened.
func (a *App) Run(ctx context.Context) error {
	cfg := a.config
	a.logger.Info(ctx, "starting ETL run",
		"organizations", len(cfg.Organizations),
		"excluded_boards", len(cfg.ExcludedBoards),
		"comment_boards", len(cfg.CommentBoards),
	)

	store, err := staging.NewS3Store(ctx, staging.S3Config{
		User:         cfg.S3RootUser,
		Password:     cfg.S3RootPassword,
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		BaseEndpoint: cfg.S3BaseEndpoint,
	})
	if err != nil {
		return fmt.Errorf("staging store init: %w", err)
	}

	runDB, err := postgres.Open(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init: %w", err)
	}
	defer runDB.Close()

	adminDB, err := postgres.Open(cfg.AdminDatabaseDSN)
	if err != nil {
		return fmt.Errorf("admin db init: %w", err)
	}
	defer adminDB.Close()

	runLog := runlog.New(store, cfg.RunLogPath, a.logger)

	client := trello.NewClient(cfg.TrelloKey, cfg.TrelloToken,
		trello.WithBaseURL(cfg.TrelloBaseURL))

	extractor := extract.NewExtractor(client, organizations(cfg),
		cfg.ExcludedBoards, cfg.CommentBoards, a.logger, runLog.Append)

	p := pipeline.New(extractor, store, runDB, adminDB, runLog, a.logger)
	return p.Run(ctx)
}
