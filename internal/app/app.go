package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/products-board/internal/cfg"
	"github.com/DRSN-tech/products-board/internal/delivery/tui"
	v1Http "github.com/DRSN-tech/products-board/internal/delivery/v1/http"
	apiRepo "github.com/DRSN-tech/products-board/internal/repository/api"
	"github.com/DRSN-tech/products-board/internal/repository/api/converter"
	"github.com/DRSN-tech/products-board/internal/usecase"
	"github.com/DRSN-tech/products-board/pkg/clients"
	"github.com/DRSN-tech/products-board/pkg/closer"
	"github.com/DRSN-tech/products-board/pkg/e"
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout = 10 * time.Second
	forcedTimeout   = 5 * time.Second
)

// App — собранные зависимости: клиент удалённого API и ресурсы на закрытие.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	repo   usecase.ProductRepository
	closer *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	client := clients.NewAPIHTTPClient(cfg.Api)
	repo := apiRepo.NewProductRepo(client, cfg.Api.BaseURL, converter.NewProductConverterImpl(), log)

	c := closer.NewCloser(forcedTimeout)
	c.AddSimple("api http client", func() error {
		client.CloseIdleConnections()
		return nil
	})

	log.Infof("products api: %s", cfg.Api.BaseURL)

	return &App{
		cfg:    cfg,
		logger: log,
		repo:   repo,
		closer: c,
	}, nil
}

// Serve запускает веб-интерфейс и блокируется до сигнала остановки или ошибки сервера.
func (a *App) Serve() error {
	pages, err := v1Http.NewPages()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	sessions := v1Http.NewSessionStore(a.cfg.Http.SessionTTL, a.cfg.Http.MaxSessions, a.logger)
	handler := v1Http.NewProductHandler(a.repo, pages, a.logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, a.logger)
	router.Init(handler, sessions)

	httpSrv := v1Http.NewServer(r, a.cfg.Http, sessions, a.logger)
	a.closer.Add("http server", httpSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	if err := a.Close(); err != nil {
		a.logger.Errorf(err, "shutdown error")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// RunTUI запускает терминальный интерфейс. Лог пишется в файл, чтобы не портить экран.
func (a *App) RunTUI(ctx context.Context) error {
	view := usecase.NewProductListView(a.logger)
	err := tui.Run(ctx, view, a.repo, a.logger)

	if cerr := a.Close(); cerr != nil {
		a.logger.Errorf(cerr, "shutdown error")
	}

	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// Close освобождает ресурсы в обратном порядке регистрации.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.closer.Close(ctx)
}

// Closer позволяет зарегистрировать ресурсы, созданные вне App (например, файл лога).
func (a *App) Closer() *closer.Closer {
	return a.closer
}
