package http

import (
	_ "github.com/DRSN-tech/products-board/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(prHandler *ProductHandler, sessions *SessionStore) {
	r.router.Use(middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Group(func(s chi.Router) {
		s.Use(sessions.withSession)
		registerPageRoutes(s, prHandler)

		s.Route("/api/v1", func(v1 chi.Router) {
			registerViewRoutes(v1, prHandler)
		})
	})
}

func registerPageRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Get("/", prHandler.index)
	router.Post("/reload", prHandler.page(prHandler.reload))

	router.Route("/form", func(f chi.Router) {
		f.Post("/add", prHandler.page(prHandler.openDraft))
		f.Post("/edit/{id}", prHandler.page(prHandler.openEdit))
		f.Post("/cancel", prHandler.page(prHandler.cancel))
		f.Post("/submit", prHandler.page(prHandler.submit))
	})

	router.Post("/products/{id}/delete", prHandler.page(prHandler.deleteProduct))
}

func registerViewRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/view", func(vr chi.Router) {
		vr.Get("/", prHandler.getView)
		vr.Post("/reload", prHandler.api(prHandler.reload))

		vr.Route("/form", func(f chi.Router) {
			f.Post("/add", prHandler.api(prHandler.openDraft))
			f.Post("/edit/{id}", prHandler.api(prHandler.openEdit))
			f.Post("/cancel", prHandler.api(prHandler.cancel))
			f.Post("/submit", prHandler.api(prHandler.submit))
		})

		vr.Post("/products/{id}/delete", prHandler.api(prHandler.deleteProduct))
	})
}
