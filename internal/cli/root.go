package cli

import (
	"os"
	"strings"

	"github.com/monocle-dev/taskhome/internal/config"
	"github.com/monocle-dev/taskhome/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string

	cfg    *config.Config
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskhome",
		Short:        "Personal task tracker living in the Slack App Home",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create or update the schema
  taskhome migrate

  # Serve the Slack request URLs
  taskhome serve

  # Refresh the people directory of one workspace
  taskhome sync --tenant T0123456
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.ConfigPath != "" {
			if err := os.Setenv("CONFIG_PATH", app.ConfigPath); err != nil {
				return err
			}
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Log)
		if err != nil {
			return err
		}

		app.cfg = cfg
		app.logger = log.With(zap.String("env", cfg.Env))
		return nil
	}

	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.logger != nil {
			_ = app.logger.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", os.Getenv("CONFIG_PATH"), "Directory holding taskhome.yaml")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newMigrateCmd(app))
	cmd.AddCommand(newSyncCmd(app))

	return cmd
}
