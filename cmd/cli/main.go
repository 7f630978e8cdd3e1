package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DiegoRubas/SCC-Solver/cmd/cli/commands"
	"github.com/DiegoRubas/SCC-Solver/internal/config"
	"github.com/DiegoRubas/SCC-Solver/pkg/utils/logging"
)

var (
	env        string
	configPath string
	logDir     string
	verbose    bool
	app        = &commands.AppContext{}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	app.Ctx = ctx

	rootCmd := &cobra.Command{
		Use:   "scc-solver",
		Short: "SCC Solver - assign participants to missions",
		Long: `A CLI tool that assigns ranked participants to capacity-limited missions by solving an
integer program that maximises the score-weighted preference of every assignment.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (defaults to scc_config.<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", logging.DefaultDir, "Directory for JSON log files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to the console")

	rootCmd.AddCommand(commands.SolveCmd(app))
	rootCmd.AddCommand(commands.ListParticipantsCmd(app))
	rootCmd.AddCommand(commands.ListRunsCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and config. Google and database connections open lazily.
func initApp() error {
	var err error
	app.Env = env

	app.Logger, err = logging.InitLogger(env, logDir, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Strings("missions", app.Cfg.Missions),
		zap.String("backend", app.Cfg.Solver.Backend))

	return nil
}
