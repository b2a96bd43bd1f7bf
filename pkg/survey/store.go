package survey

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Default store bounds.
const (
	DefaultMaxSessions = 1024
	DefaultSessionTTL  = 30 * time.Minute
)

// Session binds a Controller to a respondent.
type Session struct {
	ID         string
	CSRFToken  string
	Controller *Controller
	CreatedAt  time.Time
}

// CheckCSRF reports whether token matches the session's token.
func (s *Session) CheckCSRF(token string) bool {
	if s == nil || s.CSRFToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.CSRFToken), []byte(strings.TrimSpace(token))) == 1
}

// ControllerFactory creates the controller for a new session. ctx ends when
// the store closes.
type ControllerFactory func(ctx context.Context) *Controller

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	capacity int
	ttl      time.Duration
	newID    func() string
	now      func() time.Time
}

// WithCapacity bounds the number of live sessions; the least recently used
// session is evicted first.
func WithCapacity(n int) StoreOption {
	return func(cfg *storeConfig) {
		if n > 0 {
			cfg.capacity = n
		}
	}
}

// WithTTL sets how long an idle session survives.
func WithTTL(ttl time.Duration) StoreOption {
	return func(cfg *storeConfig) {
		if ttl > 0 {
			cfg.ttl = ttl
		}
	}
}

// WithIDGenerator overrides session id and token generation.
func WithIDGenerator(fn func() string) StoreOption {
	return func(cfg *storeConfig) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// Store keeps one Controller per session in an expiring LRU. Evicted and
// expired sessions have their controllers closed.
type Store struct {
	ctx      context.Context
	cancel   context.CancelFunc
	factory  ControllerFactory
	newID    func() string
	now      func() time.Time
	sessions *expirable.LRU[string, *Session]
}

// NewStore constructs a store. factory must not be nil.
func NewStore(ctx context.Context, factory ControllerFactory, opts ...StoreOption) *Store {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := storeConfig{
		capacity: DefaultMaxSessions,
		ttl:      DefaultSessionTTL,
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Store{
		factory: factory,
		newID:   cfg.newID,
		now:     cfg.now,
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.sessions = expirable.NewLRU[string, *Session](cfg.capacity, func(_ string, sess *Session) {
		if sess != nil && sess.Controller != nil {
			sess.Controller.Close()
		}
	}, cfg.ttl)
	return s
}

// Get returns a live session and refreshes its expiry. A session whose
// controller was closed by a concurrent eviction is dropped, never revived.
func (s *Store) Get(id string) (*Session, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	sess, ok := s.sessions.Get(id)
	if !ok || sess == nil {
		return nil, false
	}
	// Eviction may run between Get and Add; Closed is checked after Add so a
	// reinserted dead session is always caught.
	s.sessions.Add(id, sess)
	if sess.Controller != nil && sess.Controller.Closed() {
		if current, ok := s.sessions.Peek(id); ok && current == sess {
			s.sessions.Remove(id)
		}
		return nil, false
	}
	return sess, true
}

// Create starts a new session.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:         s.newID(),
		CSRFToken:  s.newID(),
		Controller: s.factory(s.ctx),
		CreatedAt:  s.now(),
	}
	s.sessions.Add(sess.ID, sess)
	return sess
}

// Resolve returns the session for id, creating one when id is unknown or
// expired. created reports whether a new session was made.
func (s *Store) Resolve(id string) (sess *Session, created bool) {
	if existing, ok := s.Get(id); ok {
		return existing, false
	}
	return s.Create(), true
}

// Remove ends a session.
func (s *Store) Remove(id string) {
	s.sessions.Remove(id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.sessions.Len()
}

// Close ends every session and cancels outstanding fetches.
func (s *Store) Close() {
	s.cancel()
	s.sessions.Purge()
}
