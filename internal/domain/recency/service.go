package recency

import (
	"context"
	"time"

	"github.com/healthconnect/portal/internal/domain/patient"
)

// Service fronts the configured Store and satisfies patient.ViewRecorder.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func NewServiceWithClock(store Store, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// RecordView is called by the patient handler when a clinician opens a
// record.
func (s *Service) RecordView(ctx context.Context, viewerID string, p *patient.Patient) error {
	return s.store.Touch(ctx, viewerID, Entry{
		PatientID:  p.ID,
		Name:       p.Name,
		Age:        p.Age,
		Avatar:     p.Avatar,
		LastViewed: s.now().UTC(),
	})
}

func (s *Service) Recent(ctx context.Context, viewerID string) ([]Entry, error) {
	return s.store.List(ctx, viewerID)
}

func (s *Service) Clear(ctx context.Context, viewerID string) error {
	return s.store.Clear(ctx, viewerID)
}
