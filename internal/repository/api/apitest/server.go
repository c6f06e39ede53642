// Package apitest — поддельный REST API продуктов для тестов.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/internal/repository/api/converter"
	"github.com/go-chi/chi/v5"
)

// Request — запрос, полученный поддельным API.
type Request struct {
	Method    string
	Path      string
	RequestID string
}

// Server хранит продукты в памяти и реализует контракт /api/Products.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	products []domain.Product
	nextID   int
	failures map[string]int
	requests []Request
	conv     *converter.ProductConverterImpl
}

// NewServer запускает поддельный API с начальными продуктами.
// Числовые id начальных продуктов учитываются при выдаче новых.
func NewServer(t testing.TB, seed ...domain.Product) *Server {
	t.Helper()

	s := &Server{
		products: slices.Clone(seed),
		failures: map[string]int{},
		conv:     converter.NewProductConverterImpl(),
	}
	for _, p := range seed {
		if n, err := strconv.Atoi(p.ID.String()); err == nil && n > s.nextID {
			s.nextID = n
		}
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api/Products", func(pr chi.Router) {
		pr.Get("/", s.list)
		pr.Post("/", s.create)
		pr.Put("/{id}", s.update)
		pr.Delete("/{id}", s.delete)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Fail заставляет все запросы с данным методом отвечать статусом status.
func (s *Server) Fail(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status
}

// Recover отменяет Fail для метода.
func (s *Server) Recover(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method)
}

// Requests возвращает все полученные запросы по порядку.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Count возвращает число запросов с данным методом.
func (s *Server) Count(method string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// Products возвращает текущее состояние хранилища.
func (s *Server) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
		})
		status, failing := s.failures[r.Method]
		s.mu.Unlock()

		if failing {
			http.Error(w, "injected failure", status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	models := make([]*converter.ProductModel, 0, len(s.products))
	for i := range s.products {
		models = append(models, s.conv.ToModel(&s.products[i]))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decode(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	s.nextID++
	p.ID = domain.ProductID(strconv.Itoa(s.nextID))
	s.products = append(s.products, *p)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, s.conv.ToModel(p))
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := domain.ProductID(chi.URLParam(r, "id"))
	p, ok := s.decode(w, r)
	if !ok {
		return
	}
	if !p.ID.IsZero() && p.ID != id {
		http.Error(w, "id mismatch", http.StatusBadRequest)
		return
	}
	p.ID = id

	s.mu.Lock()
	idx := slices.IndexFunc(s.products, func(x domain.Product) bool { return x.ID == id })
	if idx >= 0 {
		s.products[idx] = *p
	}
	s.mu.Unlock()

	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.conv.ToModel(p))
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := domain.ProductID(chi.URLParam(r, "id"))

	s.mu.Lock()
	idx := slices.IndexFunc(s.products, func(x domain.Product) bool { return x.ID == id })
	if idx >= 0 {
		s.products = slices.Delete(s.products, idx, idx+1)
	}
	s.mu.Unlock()

	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	var model converter.ProductModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	p, err := s.conv.ToEntity(&model)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return p, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
