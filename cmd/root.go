package cmd

import (
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/odata-sql/internal/config"
)

const envPrefix = "ODATASQL"

func NewRootCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "odata-sql",
		Short:         "Translate OData queries into parameterized SQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: cobrautil.CommandStack(
			bindEnv,
			func(cmd *cobra.Command, args []string) error {
				return setupLogger(cfg)
			},
		),
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")

	cmd.AddCommand(NewRunCommand(cfg))
	cmd.AddCommand(NewTranslateCommand(cfg))

	return cmd
}

// Execute runs the root command with the default configuration.
func Execute() error {
	cfg := config.NewConfigurationWithOptionsAndDefaults()
	return NewRootCommand(cfg).Execute()
}

// bindEnv fills every flag not set on the command line from ODATASQL_*
// environment variables.
func bindEnv(cmd *cobra.Command, args []string) error {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cobraflags.PresetRequiredFlags(envPrefix, make(map[*pflag.Flag]bool), cmd)
	return nil
}

func setupLogger(cfg *config.Configuration) error {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log-level: %s", cfg.LogLevel)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	zap.ReplaceGlobals(logger)
	return nil
}
