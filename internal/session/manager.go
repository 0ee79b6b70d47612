package session

import (
	"context"
	"errors"
	"log"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/backend"
)

// Manager runs the session lifecycle against the backend. User-initiated
// operations (Login) propagate failures so the calling view can show an
// inline message; background operations (RefreshUser, the bootstrap CSRF
// fetch inside Init) absorb failures into the session state so a failed
// check never breaks a page.
type Manager struct {
	backend *backend.Client
	store   Store
}

// NewManager binds a Manager to the backend client and the session store.
func NewManager(b *backend.Client, st Store) *Manager {
	return &Manager{backend: b, store: st}
}

// RefreshCSRF fetches a fresh anti-forgery token and stores it on the
// session. Failure is propagated: a caller that needs a token cannot proceed
// without one.
func (m *Manager) RefreshCSRF(ctx context.Context, s *Session) (string, error) {
	tok, err := m.backend.FetchCSRF(ctx, s)
	if err != nil {
		return "", err
	}
	s.CSRF = tok
	m.save(ctx, s)
	return tok, nil
}

// RefreshUser reconciles the session's user with the backend's answer to
// "who am I". An unauthenticated answer clears the user silently; a
// transport failure clears the user and records an error message. Loading is
// guaranteed to end up false whatever happens.
func (m *Manager) RefreshUser(ctx context.Context, s *Session) {
	s.Loading = true
	s.Err = ""
	defer func() {
		s.Loading = false
		m.save(ctx, s)
	}()

	id, err := m.backend.FetchMe(ctx, s)
	if err != nil {
		s.User = nil
		if !errors.Is(err, backend.ErrUnauthenticated) {
			s.Err = "failed to load session"
		}
		return
	}
	s.User = id
}

// Login authenticates the visitor. A CSRF token is fetched first if none is
// known. On success the user field is reconciled through RefreshUser rather
// than set directly, so "login said success" and "who-am-I says
// authenticated" cannot diverge.
func (m *Manager) Login(ctx context.Context, s *Session, username, password string) error {
	if s.CSRF == "" {
		if _, err := m.RefreshCSRF(ctx, s); err != nil {
			return err
		}
	}
	if err := m.backend.Login(ctx, s, username, password); err != nil {
		return err
	}
	m.RefreshUser(ctx, s)
	return nil
}

// Logout is best-effort from the client's perspective: the backend is asked
// to invalidate the session, and the local user is cleared regardless of how
// that call went. The first failure encountered is returned for logging, but
// the local state is already guest by then.
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	var firstErr error
	if s.CSRF == "" {
		if _, err := m.RefreshCSRF(ctx, s); err != nil {
			firstErr = err
		}
	}
	if err := m.backend.Logout(ctx, s); err != nil && firstErr == nil {
		firstErr = err
	}
	s.User = nil
	m.save(ctx, s)
	return firstErr
}

// Init bootstraps a fresh session: CSRF first, then the identity check. The
// identity check runs even when the CSRF fetch failed so Loading can never
// stick at true.
func (m *Manager) Init(ctx context.Context, s *Session) {
	defer m.RefreshUser(ctx, s)
	if _, err := m.RefreshCSRF(ctx, s); err != nil {
		log.Printf("session: initial csrf fetch failed: %v", err)
	}
}

func (m *Manager) save(ctx context.Context, s *Session) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, s); err != nil {
		log.Printf("session: save failed: %v", err)
	}
}
