package middleware // shared request processing for the frontend routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/session"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/utils"
)

// SessionCookie is the name of the frontend's own cookie. It carries a
// signed token with the session ID; the session data never leaves the
// server.
const SessionCookie = "rf_session"

// SessionKey is the Echo context key under which SessionLoader exposes the
// visitor's *session.Session to handlers.
const SessionKey = "session"

// SessionLoader resolves the visitor's session around every request. A valid
// cookie loads the stored session; anything else (no cookie, bad signature,
// expired store entry) creates a fresh session, runs the bootstrap sequence
// against the backend, and sets a new cookie. Handlers read the result via
// CurrentSession and never touch session fields directly; state mutation goes
// through the session.Manager operations, except backend cookie rotations,
// which the loader persists after the handler runs.
func SessionLoader(secret string, ttl time.Duration, store session.Store, mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var s *session.Session
			if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
				if sid, err := utils.ParseSessionToken(secret, ck.Value); err == nil {
					if loaded, err := store.Get(ctx, sid); err == nil {
						s = loaded
					}
				}
			}

			if s == nil {
				sid, err := utils.NewSessionID()
				if err != nil {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session init failed"})
				}
				signed, err := utils.NewSessionToken(secret, sid, ttl)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session init failed"})
				}
				s = session.New(sid)
				mgr.Init(ctx, s)
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    signed,
					Path:     "/",
					MaxAge:   int(ttl / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(SessionKey, s)
			err := next(c)

			// Backend cookie rotations during read-only calls mutate the
			// jar without going through a Manager operation; persist them
			// here so the next request replays the rotated cookie.
			if s.CookiesDirty() {
				if serr := store.Save(ctx, s); serr != nil {
					c.Logger().Warnf("session: save after cookie rotation failed: %v", serr)
				}
			}
			return err
		}
	}
}

// CurrentSession returns the session placed in the context by SessionLoader,
// or nil when the middleware did not run.
func CurrentSession(c echo.Context) *session.Session {
	if s, ok := c.Get(SessionKey).(*session.Session); ok {
		return s
	}
	return nil
}

// RequireUser rejects requests whose session carries no authenticated user.
// It assumes SessionLoader ran earlier in the chain. Guests get 401 so the
// UI can route them to the sign-in view.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := CurrentSession(c)
			if s == nil || s.User == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			return next(c)
		}
	}
}
