package service

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shruti0731/MiniProject2/config"
)

// ErrSessionNotFound is returned for unknown or expired sessions
var ErrSessionNotFound = errors.New("session not found")

// Session is one page view's upload form
type Session struct {
	ID        string
	Client    *UploadClient
	CreatedAt time.Time
}

// SessionStore keeps sessions in memory only. Idle sessions expire, and the
// oldest are evicted once maxSessions is exceeded.
type SessionStore struct {
	sessions    *cache.Cache
	mu          sync.Mutex
	maxSessions int // 0 = unlimited
	backend     Backend
}

func NewSessionStore(cfg *config.StoreConfig, backend Backend) *SessionStore {
	idle := time.Duration(cfg.IdleMinutes) * time.Minute
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	maxSessions := cfg.MaxSessions
	if maxSessions < 0 {
		maxSessions = 0
	}

	sessions := cache.New(idle, idle/2)
	sessions.OnEvicted(func(id string, _ interface{}) {
		slog.Debug("session evicted", "session_id", id)
	})

	slog.Info("session store initialized", "max_sessions", maxSessions, "idle", idle)

	return &SessionStore{
		sessions:    sessions,
		maxSessions: maxSessions,
		backend:     backend,
	}
}

// Create starts a new session with a fresh view state
func (s *SessionStore) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:        uuid.NewString(),
		Client:    NewUploadClient(s.backend),
		CreatedAt: time.Now(),
	}
	s.sessions.Set(sess.ID, sess, cache.DefaultExpiration)

	s.cleanupIfNeeded()
	return sess
}

// Get returns the session and extends its idle deadline
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := v.(*Session)
	s.sessions.Set(id, sess, cache.DefaultExpiration)
	return sess, nil
}

func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions.Get(id); !ok {
		return ErrSessionNotFound
	}
	s.sessions.Delete(id)
	return nil
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	return s.sessions.ItemCount()
}

// cleanupIfNeeded evicts the oldest sessions beyond maxSessions.
// Must be called with lock held
func (s *SessionStore) cleanupIfNeeded() {
	if s.maxSessions <= 0 {
		return // Unlimited
	}

	items := s.sessions.Items()
	if len(items) <= s.maxSessions {
		return
	}

	sessions := make([]*Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(*Session))
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	removeCount := len(sessions) - s.maxSessions
	for i := 0; i < removeCount; i++ {
		slog.Info("evicting oldest session",
			"session_id", sessions[i].ID,
			"created_at", sessions[i].CreatedAt,
		)
		s.sessions.Delete(sessions[i].ID)
	}
}
