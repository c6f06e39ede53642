package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DRSN-tech/products-board/internal/cfg"
	"github.com/DRSN-tech/products-board/pkg/logger"
)

const minSweepInterval = time.Second

type Server struct {
	httpServer    *http.Server
	sessions      *SessionStore
	sweepInterval time.Duration
	done          chan struct{}
	logger        logger.Logger
}

// NewServer создаёт сервер веб-интерфейса. Истёкшие сессии удаляются
// в фоне раз в половину SessionTTL, пока сервер запущен.
func NewServer(handler http.Handler, cfg *cfg.HTTPConfig, sessions *SessionStore, logger logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		sessions:      sessions,
		sweepInterval: max(cfg.SessionTTL/2, minSweepInterval),
		done:          make(chan struct{}),
		logger:        logger,
	}
}

// Run блокируется до остановки сервера. После Stop возвращает nil.
func (s *Server) Run() error {
	go s.sweep()

	s.logger.Infof("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) sweep() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sessions.Sweep()
		case <-s.done:
			return
		}
	}
}
