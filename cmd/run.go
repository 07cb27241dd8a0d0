package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/odata-sql/internal/config"
	"github.com/kubev2v/odata-sql/internal/handlers"
	"github.com/kubev2v/odata-sql/internal/server"
	"github.com/kubev2v/odata-sql/internal/services"
	"github.com/kubev2v/odata-sql/internal/store"
	"github.com/kubev2v/odata-sql/internal/store/migrations"
)

const shutdownTimeout = 10 * time.Second

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfiguration(cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	registerFlags(cmd, cfg)

	return cmd
}

func registerFlags(cmd *cobra.Command, cfg *config.Configuration) {
	f := cmd.Flags()

	f.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "port the API listens on")
	f.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "server mode (dev serves http, prod serves https)")

	f.BoolVar(&cfg.Auth.Enabled, "authentication-enabled", cfg.Auth.Enabled, "require a bearer token on the API")
	f.StringVar(&cfg.Auth.SecretFile, "authentication-secret-file", cfg.Auth.SecretFile, "file holding the HS256 token secret")

	f.StringVar(&cfg.Store.Path, "store-path", cfg.Store.Path, "path of the table registry database")

	registerTranslatorFlags(cmd, &cfg.Translator)
	f.IntVar(&cfg.Translator.Workers, "workers", cfg.Translator.Workers, "concurrent translations per batch")
	f.BoolVar(&cfg.Translator.OffsetFetch, "offset-fetch", cfg.Translator.OffsetFetch, "page mssql queries with OFFSET FETCH")
}

// registerTranslatorFlags adds the table defaults shared by serve and translate.
func registerTranslatorFlags(cmd *cobra.Command, t *config.Translator) {
	f := cmd.Flags()

	f.StringVar(&t.Flavor, "flavor", t.Flavor, "sql flavor (mssql, sqlite)")
	f.StringVar(&t.Schema, "schema", t.Schema, "mssql schema")
	f.StringVar(&t.ParameterPrefix, "parameter-prefix", t.ParameterPrefix, "prefix of generated parameter names")
	f.Int64Var(&t.ResultLimit, "result-limit", t.ResultLimit, "upper bound on returned rows (0 disables)")
	f.BoolVar(&t.SoftDelete, "soft-delete", t.SoftDelete, "exclude rows with deleted = 1")
}

func validateConfiguration(cfg *config.Configuration) error {
	return config.Validate(cfg)
}

func run(ctx context.Context, cfg *config.Configuration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zap.S().Named("serve")

	db, err := store.NewDB(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	st := store.NewStore(db)
	defer func() {
		if err := st.Close(); err != nil {
			logger.Errorw("failed to close store", "error", err)
		}
	}()

	tableSrv := services.NewTableService(st)
	translatorSrv := services.NewTranslatorService(tableSrv, cfg.Translator)
	defer translatorSrv.Close()

	h := handlers.New(translatorSrv, tableSrv)
	srv, err := server.NewServer(cfg, h.RegisterRoutes)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	logger.Infow("server started", "port", cfg.Server.HTTPPort, "mode", cfg.Server.ServerMode, "flavor", cfg.Translator.Flavor)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Stop(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
