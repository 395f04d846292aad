package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthconnect/portal/internal/domain/patient"
)

// Resolver is the scanning side. It decodes a token, validates its window,
// re-fetches the canonical record from the directory, and re-applies the
// projection. The token only ever carries an id and an access descriptor;
// the directory is the single source of truth, so a forwarded or stale
// token can never leak data the directory does not currently hold.
type Resolver struct {
	dir patient.Directory
}

func NewResolver(dir patient.Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve turns a scanned token into the authorized view of the current
// record. now is injected by the caller; the validating party's clock is
// the only authority on expiry.
//
// Failure contract: ErrMalformedToken for garbage, ErrTokenExpired for a
// lapsed window (checked before any fetch, so nothing leaks),
// ErrPatientNotFound for a directory miss, ErrDirectoryUnavailable for
// transient directory failures. Retry policy belongs to the caller.
func (r *Resolver) Resolve(ctx context.Context, token string, now time.Time) (*Projection, error) {
	cred, err := Decode(token, now)
	if err != nil {
		return nil, err
	}

	p, err := r.dir.FetchByID(ctx, cred.PatientID)
	if errors.Is(err, patient.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, cred.PatientID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	return Project(p, cred.Level), nil
}
