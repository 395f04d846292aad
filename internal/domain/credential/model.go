package credential

import (
	"errors"
	"fmt"
	"time"
)

// AccessLevel governs which fields a scanner may see and whether the
// credential carries an expiry.
type AccessLevel string

const (
	// AccessEmergency exposes only the first-responder subset and never
	// expires.
	AccessEmergency AccessLevel = "emergency"
	// AccessFull exposes the complete record and never expires.
	AccessFull AccessLevel = "full"
	// AccessTimeLimited exposes the complete record until expiresAt.
	AccessTimeLimited AccessLevel = "time-limited"
)

func (l AccessLevel) Valid() bool {
	switch l {
	case AccessEmergency, AccessFull, AccessTimeLimited:
		return true
	}
	return false
}

func ParseAccessLevel(s string) (AccessLevel, error) {
	l := AccessLevel(s)
	if !l.Valid() {
		return "", fmt.Errorf("invalid access level %q", s)
	}
	return l, nil
}

// Credential is the issued (patient, access level, expiry) tuple before
// encoding. It carries no medical content; the resolver always re-fetches
// the canonical record. ExpiresAt is set iff Level is time-limited, stored
// in UTC at second precision so tokens round-trip exactly.
type Credential struct {
	PatientID string
	Level     AccessLevel
	ExpiresAt *time.Time
}

// Duration bounds for time-limited credentials, in hours. One week ceiling.
const (
	MinDurationHours = 1
	MaxDurationHours = 168
)

var (
	// ErrMalformedToken marks a token that cannot be parsed into the
	// expected shape.
	ErrMalformedToken = errors.New("malformed token")
	// ErrTokenExpired marks a structurally valid time-limited token whose
	// window has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidDuration marks an issue request with hours outside
	// [MinDurationHours, MaxDurationHours].
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrPatientNotFound marks a resolve whose credential names a patient
	// the directory no longer has.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrDirectoryUnavailable marks a transient directory failure; callers
	// may retry, the core does not.
	ErrDirectoryUnavailable = errors.New("patient directory unavailable")
)
