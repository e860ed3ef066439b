// Package responses defines API response types used by the chainset HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/chainset/internal/registry"
)

// Response is the envelope every JSON endpoint writes.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	Sets      int       `json:"sets"`
}

// CreateSetRequest sizes a new set. Omitted fields fall back to the server's
// configured defaults.
type CreateSetRequest struct {
	BucketCount           *int     `json:"bucket_count,omitempty"`
	LoadFactorLimit       *float64 `json:"load_factor_limit,omitempty"`
	PreserveOrderOnRehash *bool    `json:"preserve_order_on_rehash,omitempty"`
}

// RehashRequest asks for a bucket array of the given length.
type RehashRequest struct {
	Buckets int `json:"buckets"`
}

// SetResponse is a set summary plus its rendered contents.
type SetResponse struct {
	registry.Info
	Describe string `json:"describe"`
}

// ElementResponse reports the outcome of an element operation.
type ElementResponse struct {
	Set     string `json:"set"`
	Element string `json:"element"`
	Present bool   `json:"present"`
	Changed bool   `json:"changed"`
	Bucket  int    `json:"bucket"`
	Size    int    `json:"size"`
	Buckets int    `json:"buckets"`
}

// DeletedResponse confirms a dropped set.
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
