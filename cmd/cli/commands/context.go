package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/DiegoRubas/SCC-Solver/internal/config"
	"github.com/DiegoRubas/SCC-Solver/pkg/clients/sheetsclient"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/services"
	"github.com/DiegoRubas/SCC-Solver/pkg/csvio"
	"github.com/DiegoRubas/SCC-Solver/pkg/db"
	"github.com/DiegoRubas/SCC-Solver/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// Google and database connections are opened on first use, so commands that only
// read a local CSV file never trigger the OAuth flow.
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context

	sheetsClient *sheetsclient.Client
	runStore     db.RunStore
	storeOpened  bool
	closers      []func()
}

// SheetsClient returns the Google Sheets client, authenticating on first use
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	a.Logger.Info("Loading OAuth client configuration")
	_, clientJSON, err := config.LoadOAuthClientWithEnv(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	a.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(a.Ctx, clientJSON, a.Env, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.sheetsClient = client

	return client, nil
}

// RunStore returns the configured run history store: Postgres when postgres_url is set,
// otherwise the SheetsSQL spreadsheet when database_sheet_id is set, otherwise nil.
func (a *AppContext) RunStore() (db.RunStore, error) {
	if a.storeOpened {
		return a.runStore, nil
	}

	switch {
	case a.Cfg.PostgresURL != "":
		a.Logger.Info("Connecting to postgres")
		pg, err := postgres.NewDB(a.Ctx, a.Cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pg.RunMigrations(a.Ctx); err != nil {
			pg.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		a.runStore = pg

	case a.Cfg.DatabaseSheetID != "":
		client, err := a.SheetsClient()
		if err != nil {
			return nil, err
		}
		a.Logger.Info("Connecting to database", zap.String("spreadsheet_id", a.Cfg.DatabaseSheetID))
		sheetsDB, err := db.Open(a.Ctx, client, a.Cfg.DatabaseSheetID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.runStore = sheetsDB

	default:
		a.Logger.Debug("No run store configured")
	}

	a.storeOpened = true
	return a.runStore, nil
}

// ParticipantSource returns the CSV file at input, or the configured participant tab when input is empty
func (a *AppContext) ParticipantSource(input string) (services.ParticipantSource, error) {
	if input != "" {
		return csvio.NewParticipantFile(input, a.Cfg.ColumnSpec()), nil
	}

	if a.Cfg.ParticipantSheetID == "" {
		return nil, fmt.Errorf("no participant source: pass --input or set participant_sheet_id")
	}

	client, err := a.SheetsClient()
	if err != nil {
		return nil, err
	}
	return sheetsclient.NewParticipantSheet(client, a.Cfg.ParticipantSheetID, a.Cfg.ParticipantsTab, a.Cfg.ColumnSpec()), nil
}

// Close releases open connections
func (a *AppContext) Close() {
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
}
