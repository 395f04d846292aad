package auth

import (
	"strings"
	"testing"
	"time"
)

func testSessions(ttl time.Duration) *SessionManager {
	return NewSessionManager(SessionConfig{
		Secret: []byte(strings.Repeat("k", 32)),
		TTL:    ttl,
	})
}

func TestSessionManager_IssueVerifyRoundTrip(t *testing.T) {
	m := testSessions(time.Hour)
	user := &User{ID: "clinician-1", Email: "dr.smith@clinic.com", Role: RoleClinician}

	token, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got.ID != user.ID || got.Email != user.Email || got.Role != user.Role {
		t.Errorf("verified user = %+v, want %+v", got, user)
	}
}

func TestSessionManager_RejectsExpiredToken(t *testing.T) {
	m := testSessions(time.Hour)
	issued := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Issue(&User{ID: "patient-1", Role: RolePatient})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := m.Verify(token); err == nil {
		t.Error("expected expired session to be rejected")
	}
}

func TestSessionManager_RejectsWrongSecret(t *testing.T) {
	a := testSessions(time.Hour)
	b := NewSessionManager(SessionConfig{Secret: []byte(strings.Repeat("x", 32))})

	token, err := a.Issue(&User{ID: "patient-1", Role: RolePatient})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if _, err := b.Verify(token); err == nil {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestSessionManager_RejectsGarbage(t *testing.T) {
	m := testSessions(time.Hour)
	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := m.Verify(token); err == nil {
			t.Errorf("expected %q to be rejected", token)
		}
	}
}
