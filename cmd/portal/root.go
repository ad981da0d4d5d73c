package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/portalguard/modules/portal"
	"github.com/dmitrymomot/portalguard/pkg/clientip"
	"github.com/dmitrymomot/portalguard/pkg/config"
	"github.com/dmitrymomot/portalguard/pkg/environment"
	"github.com/dmitrymomot/portalguard/pkg/logger"
	"github.com/dmitrymomot/portalguard/pkg/requestid"
	"github.com/dmitrymomot/portalguard/pkg/route"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"portal"`
	LogLevel string `env:"LOG_LEVEL"`
}

var (
	envFiles []string

	app       appConfig
	portalCfg portal.Config
	env       environment.Environment
	log       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "portal",
	Short:         "Route table and navigation guard for the portal SPA",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if len(envFiles) > 0 {
			if err := config.LoadEnv(envFiles...); err != nil {
				return err
			}
		}
		if err := config.Load(&app); err != nil {
			return err
		}
		if err := config.Load(&portalCfg); err != nil {
			return err
		}

		env = environment.Parse(app.Env)
		log = logger.New(
			logger.WithEnvironment(env, app.Name),
			logger.WithLevelName(app.LogLevel),
			logger.WithOutput(cmd.ErrOrStderr()),
			logger.WithContextExtractors(
				requestid.LoggerExtractor(),
				clientip.LoggerExtractor(),
			),
		)
		logger.SetAsDefault(log)
		return nil
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "additional .env files, later files win")
}

// loadTable builds the route table the way the portal does.
func loadTable() (*route.Table, error) {
	routes := route.Default(portalCfg.LoginPath, portalCfg.HomePath)
	if portalCfg.RoutesFile != "" {
		var err error
		if routes, err = route.LoadFile(portalCfg.RoutesFile); err != nil {
			return nil, err
		}
	}
	return route.New(routes)
}
