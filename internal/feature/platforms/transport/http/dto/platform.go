// Package dto defines data transfer objects for the platforms HTTP API.
package dto

// PlatformItem represents a platform in the API response.
type PlatformItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
