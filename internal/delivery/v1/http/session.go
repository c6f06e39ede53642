package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/DRSN-tech/products-board/internal/usecase"
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/google/uuid"
)

const sessionCookie = "products_view"

// Session — представление списка продуктов, принадлежащее одному браузеру.
// Все обращения к view выполняются под mu.
type Session struct {
	ID        string
	mu        sync.Mutex
	view      *usecase.ProductListView
	activated bool
	lastSeen  time.Time
}

// SessionStore хранит сессии в памяти и удаляет неактивные дольше ttl.
// Сессий не бывает больше max: при переполнении вытесняется давно не использованная.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	now      func() time.Time
	logger   logger.Logger
}

func NewSessionStore(ttl time.Duration, max int, logger logger.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		logger:   logger,
	}
}

// Acquire возвращает сессию по id или создаёт новую, если id пуст,
// неизвестен или сессия истекла.
func (s *SessionStore) Acquire(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = now
		return sess
	}

	if s.max > 0 && len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}

	id = uuid.NewString()
	sess := &Session{
		ID:       id,
		view:     usecase.NewProductListView(s.logger.With("session", id)),
		lastSeen: now,
	}
	s.sessions[sess.ID] = sess
	s.logger.Debugf("view session %s created", sess.ID)
	return sess
}

// Len возвращает число живых сессий.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep удаляет истёкшие сессии.
func (s *SessionStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(s.now())
}

func (s *SessionStore) evictOldestLocked() {
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.ID)
		s.logger.Warnf("view session limit %d reached, session %s evicted", s.max, oldest.ID)
	}
}

func (s *SessionStore) evictLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			s.logger.Debugf("view session %s expired", id)
		}
	}
}

type sessionKey struct{}

// withSession привязывает запрос к сессии представления через cookie.
func (s *SessionStore) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}

		sess := s.Acquire(id)
		if sess.ID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func sessionFrom(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey{}).(*Session)
	return sess
}
