package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DRSN-tech/products-board/internal/app"
	config "github.com/DRSN-tech/products-board/internal/cfg"
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/spf13/cobra"
)

type options struct {
	apiBaseURL string
	port       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "products-board",
		Short:         "Список продуктов поверх удалённого API /api/Products",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiBaseURL, "api-base-url", "", "Базовый адрес API (перекрывает API_BASE_URL)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Запустить веб-интерфейс",
		RunE: func(*cobra.Command, []string) error {
			return runServe(opts)
		},
	}
	serve.Flags().StringVarP(&opts.port, "port", "p", "", "Порт HTTP (перекрывает HTTP_PORT)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Запустить терминальный интерфейс",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	root.AddCommand(serve, tuiCmd)
	return root
}

func loadConfig(log logger.Logger, opts *options) (*config.Config, error) {
	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		return nil, err
	}

	if opts.apiBaseURL != "" {
		cfg.Api.BaseURL = strings.TrimRight(opts.apiBaseURL, "/")
	}
	if opts.port != "" {
		cfg.Http.Port = opts.port
	}

	return cfg, nil
}

func runServe(opts *options) error {
	log := logger.NewSlogLogger()

	cfg, err := loadConfig(log, opts)
	if err != nil {
		return err
	}
	log = logger.NewSlogLoggerTo(os.Stdout, cfg.Log.Level)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		return err
	}

	return application.Serve()
}

func runTUI(ctx context.Context, opts *options) error {
	boot := logger.NewSlogLogger()

	cfg, err := loadConfig(boot, opts)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		boot.Errorf(err, "failed to open log file %s", cfg.Log.File)
		return err
	}
	log := logger.NewSlogLoggerTo(logFile, cfg.Log.Level)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		logFile.Close()
		boot.Errorf(err, "failed to initialize app")
		return err
	}
	application.Closer().AddSimple("log file", logFile.Close)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	return application.RunTUI(ctx)
}
