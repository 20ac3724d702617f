package api

import "time"

// Option represents one catalog option in the API response
type Option struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	HasDefault  bool   `json:"hasDefault"`
	Description string `json:"description"`
	Section     string `json:"section,omitempty"`
	Value       any    `json:"value,omitempty"`
	Set         bool   `json:"set"`
	Resolved    string `json:"resolved,omitempty"` // path options joined onto the root
}

// ListOptionsResponse represents the response for listing options
type ListOptionsResponse struct {
	Root    string   `json:"root,omitempty"`
	Options []Option `json:"options"`
	Count   int      `json:"count"`
}

// OptionValueResponse represents a single resolved option
type OptionValueResponse struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Value    any    `json:"value"`
	Resolved string `json:"resolved,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionResponse represents the version information
type VersionResponse struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
