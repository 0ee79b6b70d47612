package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/model"
)

// FetchCSRF obtains a fresh anti-forgery token from the backend. A non-2xx
// status is a hard failure: without a token no mutation can succeed, so the
// error is propagated instead of being absorbed into the session.
func (c *Client) FetchCSRF(ctx context.Context, creds Credentials) (string, error) {
	resp, err := c.Do(ctx, creds, http.MethodGet, "/api/auth/csrf", nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return "", fmt.Errorf("csrf fetch failed: status %d", resp.StatusCode)
	}
	var out struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("csrf fetch failed: %w", err)
	}
	return out.CSRFToken, nil
}

// FetchMe asks the backend who the visitor is. Any non-2xx status means the
// backend does not recognize the session and yields ErrUnauthenticated;
// transport failures are returned as-is so the caller can tell the two cases
// apart.
func (c *Client) FetchMe(ctx context.Context, creds Credentials) (*model.Identity, error) {
	resp, err := c.Do(ctx, creds, http.MethodGet, "/api/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return nil, ErrUnauthenticated
	}
	var id model.Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Login submits the visitor's credentials. On a non-2xx status the error
// carries the response body text so the sign-in view can show it inline.
func (c *Client) Login(ctx context.Context, creds Credentials, username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")

	resp, err := c.Do(ctx, creds, http.MethodPost, "/api/auth/login", bytes.NewReader(body), hdr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if text := strings.TrimSpace(string(msg)); text != "" {
			return fmt.Errorf("login failed: %s", text)
		}
		return fmt.Errorf("login failed: status %d", resp.StatusCode)
	}
	drain(resp.Body)
	return nil
}

// Logout tells the backend to invalidate the session. The response status is
// deliberately ignored; only transport failures are reported. The backend is
// the authority on invalidation and the caller forgets its local user either
// way.
func (c *Client) Logout(ctx context.Context, creds Credentials) error {
	resp, err := c.Do(ctx, creds, http.MethodPost, "/api/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	drain(resp.Body)
	return nil
}

// Register creates a new account. The backend answers 200 with a plain-text
// verdict either way, so the body text is the only failure signal.
func (c *Client) Register(ctx context.Context, creds Credentials, username, email, password string) error {
	q := url.Values{}
	q.Set("username", username)
	q.Set("email", email)
	q.Set("password", password)

	resp, err := c.Do(ctx, creds, http.MethodPost, "/api/user/create?"+q.Encode(), nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	text := strings.TrimSpace(string(msg))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("registration failed: status %d", resp.StatusCode)
	}
	if text != "" && text != "User created" {
		return fmt.Errorf("registration failed: %s", text)
	}
	return nil
}
