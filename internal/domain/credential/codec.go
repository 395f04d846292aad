package credential

import (
	"encoding/json"
	"fmt"
	"time"
)

// tokenPayload is the wire shape embedded in a QR code: compact UTF-8 JSON,
// printable ASCII, no medical content. allowedFields is informational only
// and emitted for emergency credentials; the resolver recomputes the
// restriction from accessLevel and never trusts it.
type tokenPayload struct {
	PatientID     string   `json:"patientId"`
	AccessLevel   string   `json:"accessLevel"`
	ExpiresAt     string   `json:"expiresAt,omitempty"`
	AllowedFields []string `json:"allowedFields,omitempty"`
}

// Encode serializes a credential into its token string. Deterministic: the
// same credential value always yields the same token.
func Encode(c Credential) (string, error) {
	if c.PatientID == "" {
		return "", fmt.Errorf("encode credential: patient id is required")
	}
	if !c.Level.Valid() {
		return "", fmt.Errorf("encode credential: invalid access level %q", c.Level)
	}
	if c.Level == AccessTimeLimited && c.ExpiresAt == nil {
		return "", fmt.Errorf("encode credential: time-limited credential requires an expiry")
	}

	p := tokenPayload{
		PatientID:   c.PatientID,
		AccessLevel: string(c.Level),
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.UTC().Format(time.RFC3339)
	}
	if c.Level == AccessEmergency {
		p.AllowedFields = EmergencyFields()
	}

	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode credential: %w", err)
	}
	return string(b), nil
}

// Decode parses a token back into a credential and checks its window
// against now. The clock is a parameter so expiry checks stay deterministic
// under test.
//
// A time-limited token past its window decodes structurally but returns the
// credential together with ErrTokenExpired, so callers can tell expired
// apart from garbage. Business-level checks (does the patient exist) are
// the resolver's concern, never the codec's.
func Decode(token string, now time.Time) (*Credential, error) {
	var p tokenPayload
	if err := json.Unmarshal([]byte(token), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if p.PatientID == "" {
		return nil, fmt.Errorf("%w: missing patientId", ErrMalformedToken)
	}
	level, err := ParseAccessLevel(p.AccessLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	cred := &Credential{PatientID: p.PatientID, Level: level}
	if p.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, p.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid expiresAt %q", ErrMalformedToken, p.ExpiresAt)
		}
		t = t.UTC()
		cred.ExpiresAt = &t
	}

	if level == AccessTimeLimited {
		if cred.ExpiresAt == nil {
			return nil, fmt.Errorf("%w: time-limited token missing expiresAt", ErrMalformedToken)
		}
		if cred.ExpiresAt.Before(now) {
			return cred, fmt.Errorf("%w: expired at %s", ErrTokenExpired, cred.ExpiresAt.Format(time.RFC3339))
		}
	}

	return cred, nil
}
