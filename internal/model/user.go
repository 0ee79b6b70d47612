package model

// Identity is the authenticated user as reported by the backend's
// current-user endpoint. The backend only guarantees the username; email and
// roles appear on some deployments and are passed through when present.
type Identity struct {
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}
