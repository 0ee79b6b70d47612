// Package session tracks authentication and anti-forgery state for one
// visitor and exposes the operations that mutate it. A Session is loaded
// fresh from the store for every request and written back after each
// operation; concurrent operations on the same visitor are last-write-wins at
// save time, matching the cooperative single-visitor model the state was
// designed around.
package session

import (
	"net/http"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/model"
)

// Cookie is the subset of an HTTP cookie the session needs to replay to the
// backend. Only name and value survive serialization; expiry is governed by
// the session's own TTL.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session is the client-side record of one visitor: the identity the backend
// last confirmed, the current CSRF token, the cookies the backend has set,
// and the loading/error state the views render from.
//
// The CSRF token must be populated before any state-mutating request goes
// out; Manager fetches one lazily on first use when it is missing.
type Session struct {
	ID      string          `json:"id"`
	User    *model.Identity `json:"user"`
	CSRF    string          `json:"csrf_token"`
	Loading bool            `json:"loading"`
	Err     string          `json:"error"`
	Jar     []Cookie        `json:"cookies"`

	// dirty is set when StoreCookies changes the jar, so the request
	// middleware can persist rotations that happen outside Manager
	// operations. Never serialized.
	dirty bool
}

// New returns an uninitialized session: no user, no token, loading until the
// first identity check completes.
func New(id string) *Session {
	return &Session{ID: id, Loading: true}
}

// CSRFToken implements backend.Credentials.
func (s *Session) CSRFToken() string { return s.CSRF }

// BackendCookies implements backend.Credentials.
func (s *Session) BackendCookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(s.Jar))
	for _, ck := range s.Jar {
		out = append(out, &http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	return out
}

// StoreCookies implements backend.Credentials. Cookies are merged by name so
// a rotated backend session cookie replaces its predecessor; cookies the
// backend clears (empty value or MaxAge<0) are dropped.
func (s *Session) StoreCookies(set []*http.Cookie) {
	for _, ck := range set {
		s.storeCookie(ck)
	}
}

func (s *Session) storeCookie(ck *http.Cookie) {
	if ck.Name == "" {
		return
	}
	if ck.Value == "" || ck.MaxAge < 0 {
		for i, existing := range s.Jar {
			if existing.Name == ck.Name {
				s.Jar = append(s.Jar[:i], s.Jar[i+1:]...)
				s.dirty = true
				return
			}
		}
		return
	}
	for i, existing := range s.Jar {
		if existing.Name == ck.Name {
			if s.Jar[i].Value != ck.Value {
				s.Jar[i].Value = ck.Value
				s.dirty = true
			}
			return
		}
	}
	s.Jar = append(s.Jar, Cookie{Name: ck.Name, Value: ck.Value})
	s.dirty = true
}

// CookiesDirty reports whether StoreCookies changed the jar since the session
// was loaded or last saved by the request middleware.
func (s *Session) CookiesDirty() bool { return s.dirty }
