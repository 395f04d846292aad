package recency

import (
	"context"
	"testing"
	"time"

	"github.com/healthconnect/portal/internal/domain/patient"
)

func TestService_RecordView(t *testing.T) {
	store := NewMemoryStore(5)
	viewedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	svc := NewServiceWithClock(store, func() time.Time { return viewedAt })

	p := &patient.Patient{ID: "patient-1", Name: "John Smith", Age: 45, Avatar: "JS"}
	if err := svc.RecordView(context.Background(), "clinician-1", p); err != nil {
		t.Fatalf("RecordView() error: %v", err)
	}

	entries, err := svc.Recent(context.Background(), "clinician-1")
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.PatientID != "patient-1" || e.Name != "John Smith" || e.Age != 45 || e.Avatar != "JS" {
		t.Errorf("entry = %+v", e)
	}
	if !e.LastViewed.Equal(viewedAt) {
		t.Errorf("lastViewed = %v, want %v", e.LastViewed, viewedAt)
	}
}

func TestService_Clear(t *testing.T) {
	store := NewMemoryStore(5)
	svc := NewService(store)
	ctx := context.Background()

	p := &patient.Patient{ID: "patient-1", Name: "John Smith"}
	if err := svc.RecordView(ctx, "clinician-1", p); err != nil {
		t.Fatalf("RecordView() error: %v", err)
	}
	if err := svc.Clear(ctx, "clinician-1"); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	entries, err := svc.Recent(ctx, "clinician-1")
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty list, got %d entries", len(entries))
	}
}
