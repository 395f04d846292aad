package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthconnect/portal/internal/domain/patient"
	"github.com/healthconnect/portal/internal/platform/metrics"
)

// Service glues issuer and resolver to the directory for the HTTP surface.
type Service struct {
	dir      patient.Directory
	issuer   *Issuer
	resolver *Resolver
}

func NewService(dir patient.Directory, issuer *Issuer) *Service {
	return &Service{dir: dir, issuer: issuer, resolver: NewResolver(dir)}
}

// IssuedCredential is what the issue endpoint returns: the token plus the
// descriptor the caller needs to render it (level, expiry).
type IssuedCredential struct {
	Token       string      `json:"token"`
	AccessLevel AccessLevel `json:"accessLevel"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty"`
}

// IssueForPatient fetches the record and mints a credential for it.
func (s *Service) IssueForPatient(ctx context.Context, patientID string, level AccessLevel, hours int) (*IssuedCredential, error) {
	p, err := s.dir.FetchByID(ctx, patientID)
	if errors.Is(err, patient.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, patientID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	cred, err := s.issuer.Mint(p, level, hours)
	if err != nil {
		return nil, err
	}
	token, err := Encode(cred)
	if err != nil {
		return nil, err
	}

	metrics.RecordCredentialIssued(string(level))
	return &IssuedCredential{Token: token, AccessLevel: cred.Level, ExpiresAt: cred.ExpiresAt}, nil
}

// Resolve is the scanner entry point.
func (s *Service) Resolve(ctx context.Context, token string, now time.Time) (*Projection, error) {
	proj, err := s.resolver.Resolve(ctx, token, now)
	metrics.RecordCredentialResolved(resolveOutcome(err))
	return proj, err
}

func resolveOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	case errors.Is(err, ErrPatientNotFound):
		return "not_found"
	case errors.Is(err, ErrDirectoryUnavailable):
		return "unavailable"
	}
	return "error"
}
