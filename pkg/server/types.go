package server

import (
	"time"

	"github.com/NVIDIA/implindex/pkg/implementors"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// TraitStatus describes the coordinator behind one trait.
type TraitStatus struct {
	Trait    string             `json:"trait"`
	Mode     implementors.Mode  `json:"mode"`
	Consumer bool               `json:"consumer"`
	Stats    implementors.Stats `json:"stats"`
}

// TraitsResponse is the body of GET /v1/traits.
type TraitsResponse struct {
	Traits    []TraitStatus `json:"traits"`
	Timestamp time.Time     `json:"timestamp"`
}

// PublishResponse is the body of POST /v1/fragments.
type PublishResponse struct {
	Trait   string   `json:"trait"`
	Modules []string `json:"modules"`
	Records int      `json:"records"`
	State   string   `json:"state"`
}
