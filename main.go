package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/config"
	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/routes"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatal("main.env:", err)
	}
	flags, err := config.NewFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}

	if err := rootCmd(flags).Execute(); err != nil {
		log.Fatal("main:", err)
	}
}

func rootCmd(flags *config.Flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "qforms",
		Short:         "Form builder and public submission service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Register(root.PersistentFlags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}
			store, err := database.Open(cfg.DBUrl, database.Options{MaxOpenConns: 1})
			if err != nil {
				return err
			}
			log.Info("Schema up to date in " + cfg.DBUrl)
			return store.Close()
		},
	}

	root.AddCommand(serveCmd, migrateCmd)
	root.RunE = serveCmd.RunE
	return root
}

func setup(flags *config.Flags) (config.Config, error) {
	cfg, err := flags.Config()
	if err != nil {
		return config.Config{}, err
	}
	log.SetFormat(cfg.LogFormat)
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg config.Config) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(cfg.DBUrl, database.Options{MaxOpenConns: cfg.MaxOpenConns})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      routes.Wire(app.New(store, cfg)),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Listening on " + cfg.Url())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
