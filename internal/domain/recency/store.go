package recency

import (
	"context"
	"time"
)

// DefaultLimit is how many recently-viewed entries a viewer keeps.
const DefaultLimit = 5

// Entry is one recently-viewed roster card: just enough to render the list
// without another directory round trip.
type Entry struct {
	PatientID  string    `json:"patientId"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Avatar     string    `json:"avatar"`
	LastViewed time.Time `json:"lastViewed"`
}

// Store is an injected key-value store of per-viewer MRU lists with
// bounded-size eviction: a touch deduplicates by patient id, moves the
// entry to the front, and drops the oldest beyond the limit.
type Store interface {
	Touch(ctx context.Context, viewerID string, e Entry) error
	List(ctx context.Context, viewerID string) ([]Entry, error)
	Clear(ctx context.Context, viewerID string) error
}
