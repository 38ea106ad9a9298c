package session

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"courtside/models"
	"courtside/storage"
)

// State is the session store's lifecycle position.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "uninitialized"
	}
}

// Requester is the slice of the HTTP client the session store depends on.
type Requester interface {
	Request(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error)
}

// SessionStore owns the locally known identity of the signed-in user and
// keeps it consistent with durable storage.
type SessionStore interface {
	Restore(ctx context.Context) error
	SignIn(ctx context.Context, email, password string) (*models.Session, string, error)
	Login(ctx context.Context, sess models.Session, token string) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req models.SessionUpdateRequest) (*models.Session, error)
	Refresh(ctx context.Context) error
	Current() (*models.Session, State)
}

// DefaultSessionStore is the production implementation. The session record
// and bearer token live under the storage keys "user" and "token" and are
// always written and cleared as a pair.
//
// Operations are not serialized against each other beyond the internal
// mutex; a monotonic sequence counter makes sure a response that arrives
// after a newer mutation cannot overwrite it.
type DefaultSessionStore struct {
	Store storage.Store
	API   Requester

	logger  *zap.Logger
	mu      sync.Mutex
	state   State
	current *models.Session
	seq     uint64
}

func NewDefaultSessionStore(store storage.Store, api Requester, logger *zap.Logger) *DefaultSessionStore {
	return &DefaultSessionStore{
		Store:  store,
		API:    api,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Current returns a copy of the session (nil when unauthenticated) and the
// store's state.
func (s *DefaultSessionStore) Current() (*models.Session, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, s.state
	}
	copied := *s.current
	return &copied, s.state
}

var _ SessionStore = (*DefaultSessionStore)(nil)
