package patient

import (
	"context"
	"fmt"
)

// Service exposes the read-side roster operations over whichever Directory
// implementation the configuration selected.
type Service struct {
	dir Directory
}

func NewService(dir Directory) *Service {
	return &Service{dir: dir}
}

// Roster lists the directory filtered by query and ordered by key.
func (s *Service) Roster(ctx context.Context, query string, key SortKey) ([]*Patient, error) {
	patients, err := s.dir.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return Sort(Search(patients, query), key), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	return s.dir.FetchByID(ctx, id)
}

// GetByQRCode looks up a record by its raw legacy QR identifier, the
// pre-credential scheme where the QR payload was just the qr_code value.
func (s *Service) GetByQRCode(ctx context.Context, code string) (*Patient, error) {
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	return s.dir.FetchByQRCode(ctx, code)
}
