// Sentinel errors shared by the typed backend calls. Handlers translate
// these into the matching HTTP responses instead of inspecting status codes
// themselves.
package backend

import "errors"

// ErrUnauthenticated is returned when the backend reports no active session
// for the visitor's credentials. Callers treat the visitor as a guest.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrRecipeNotFound is returned when a recipe lookup misses. Handlers should
// translate this into HTTP 404.
var ErrRecipeNotFound = errors.New("recipe not found")
