package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/backend"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/middleware"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/session"
)

// SessionHandler bundles dependencies for the auth and session endpoints.
type SessionHandler struct {
	Mgr     *session.Manager
	Backend *backend.Client
}

func NewSessionHandler(mgr *session.Manager, b *backend.Client) *SessionHandler {
	return &SessionHandler{Mgr: mgr, Backend: b}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	Username string `json:"username"`
}
type sessionResp struct {
	User          *userPart `json:"user"`
	Authenticated bool      `json:"authenticated"`
	Loading       bool      `json:"loading"`
	CSRFReady     bool      `json:"csrfReady"`
	Error         string    `json:"error,omitempty"`
}

func sessionView(s *session.Session) sessionResp {
	resp := sessionResp{
		Authenticated: s.User != nil,
		Loading:       s.Loading,
		CSRFReady:     s.CSRF != "",
		Error:         s.Err,
	}
	if s.User != nil {
		resp.User = &userPart{Username: s.User.Username}
	}
	return resp
}

// Current: report the visitor's session state as the views render it.
func (h *SessionHandler) Current(c echo.Context) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	return c.JSON(http.StatusOK, sessionView(s))
}

// Refresh: re-run the identity check against the backend and return the
// reconciled state.
func (h *SessionHandler) Refresh(c echo.Context) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	h.Mgr.RefreshUser(ctx, s)
	return c.JSON(http.StatusOK, sessionView(s))
}

// Login: authenticate against the backend. Failures come back 401 with the
// backend's own message so the sign-in view can show it inline.
func (h *SessionHandler) Login(c echo.Context) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	if err := h.Mgr.Login(ctx, s, req.Username, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, sessionView(s))
}

// Logout: backend invalidation is best-effort, the local user is gone either
// way, so the response is always the guest state.
func (h *SessionHandler) Logout(c echo.Context) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Mgr.Logout(ctx, s); err != nil {
		c.Logger().Warnf("logout: backend call failed: %v", err)
	}
	return c.JSON(http.StatusOK, sessionView(s))
}

// Register: create a backend account. The account is not signed in
// afterwards; the UI routes to the sign-in view on success.
func (h *SessionHandler) Register(c echo.Context) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	if err := h.Backend.Register(ctx, s, req.Username, req.Email, req.Password); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "account created"})
}
