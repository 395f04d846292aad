package credential

import (
	"fmt"
	"time"

	"github.com/healthconnect/portal/internal/domain/patient"
)

// Issuer mints credentials on the patient side. The clock is injectable so
// expiry computation is deterministic under test.
type Issuer struct {
	now func() time.Time
}

func NewIssuer() *Issuer {
	return &Issuer{now: time.Now}
}

func NewIssuerWithClock(now func() time.Time) *Issuer {
	return &Issuer{now: now}
}

// Mint validates the request and builds the credential value. Time-limited
// requests require hours in [MinDurationHours, MaxDurationHours] and get
// expiresAt = now + hours; other levels ignore hours entirely.
func (i *Issuer) Mint(p *patient.Patient, level AccessLevel, hours int) (Credential, error) {
	if p == nil || p.ID == "" {
		return Credential{}, fmt.Errorf("mint credential: patient is required")
	}
	if !level.Valid() {
		return Credential{}, fmt.Errorf("mint credential: invalid access level %q", level)
	}

	cred := Credential{PatientID: p.ID, Level: level}
	if level == AccessTimeLimited {
		if hours < MinDurationHours || hours > MaxDurationHours {
			return Credential{}, fmt.Errorf("%w: hours must be in [%d, %d], got %d",
				ErrInvalidDuration, MinDurationHours, MaxDurationHours, hours)
		}
		exp := i.now().UTC().Add(time.Duration(hours) * time.Hour).Truncate(time.Second)
		cred.ExpiresAt = &exp
	}
	return cred, nil
}

// Issue mints and encodes in one step: the patient-facing "generate QR"
// operation.
func (i *Issuer) Issue(p *patient.Patient, level AccessLevel, hours int) (string, error) {
	cred, err := i.Mint(p, level, hours)
	if err != nil {
		return "", err
	}
	return Encode(cred)
}
