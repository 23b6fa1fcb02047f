// Package api defines the JSON bodies shared across HTTP handlers.
package api

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse is returned by /auth/register and /auth/login.
type TokenResponse struct {
	Token string `json:"token"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	OK bool `json:"ok"`
}
