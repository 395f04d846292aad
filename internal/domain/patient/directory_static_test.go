package patient

import (
	"context"
	"errors"
	"testing"
)

func TestStaticDirectory_DemoRoster(t *testing.T) {
	dir := NewStaticDirectory()

	patients, err := dir.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(patients) != 5 {
		t.Fatalf("expected 5 demo patients, got %d", len(patients))
	}
	for _, p := range patients {
		if err := p.Validate(); err != nil {
			t.Errorf("demo patient %s is invalid: %v", p.ID, err)
		}
	}
}

func TestStaticDirectory_FetchByID(t *testing.T) {
	dir := NewStaticDirectory()

	p, err := dir.FetchByID(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("FetchByID() error: %v", err)
	}
	if p.Name != "John Smith" {
		t.Errorf("name = %q", p.Name)
	}

	_, err = dir.FetchByID(context.Background(), "patient-404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStaticDirectory_FetchByQRCode(t *testing.T) {
	dir := NewStaticDirectory()

	p, err := dir.FetchByQRCode(context.Background(), "QR-JOHN-SMITH-001")
	if err != nil {
		t.Fatalf("FetchByQRCode() error: %v", err)
	}
	if p.ID != "patient-1" {
		t.Errorf("id = %q", p.ID)
	}

	_, err = dir.FetchByQRCode(context.Background(), "QR-NOBODY")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStaticDirectory_ReadsAreIsolated(t *testing.T) {
	dir := NewStaticDirectory()

	first, err := dir.FetchByID(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("FetchByID() error: %v", err)
	}
	first.Name = "mutated"
	first.Allergies[0] = "mutated"

	second, err := dir.FetchByID(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("FetchByID() error: %v", err)
	}
	if second.Name == "mutated" || second.Allergies[0] == "mutated" {
		t.Error("mutating a fetched record leaked into the directory")
	}
}

func TestStaticDirectory_SkipsDuplicateIDs(t *testing.T) {
	dir := NewStaticDirectory(
		&Patient{ID: "p1", Name: "First"},
		&Patient{ID: "p1", Name: "Second"},
	)

	patients, err := dir.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(patients) != 1 {
		t.Fatalf("expected 1 record, got %d", len(patients))
	}
	if patients[0].Name != "First" {
		t.Errorf("expected the first record to win, got %q", patients[0].Name)
	}
}
