package auth

import (
	"crypto/subtle"
	"strings"
)

type Role string

const (
	RoleClinician Role = "clinician"
	RolePatient   Role = "patient"
)

// User is the authenticated identity carried on the request context. For
// patient users the ID doubles as their record id in the directory.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Entry is one row of the demo allow-list. This is the whole auth story by
// design: the portal ships with hardcoded demo identities and nothing else.
type Entry struct {
	Email    string
	Password string
	ID       string
	Role     Role
}

// AllowList authenticates against a fixed set of entries.
type AllowList struct {
	byEmail map[string]Entry
}

func NewAllowList(entries ...Entry) *AllowList {
	if len(entries) == 0 {
		entries = DefaultEntries()
	}
	a := &AllowList{byEmail: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		a.byEmail[strings.ToLower(e.Email)] = e
	}
	return a
}

// Authenticate checks email and password and returns the matching user.
// The password comparison is constant-time; the email lookup is not, which
// is fine for a demo allow-list.
func (a *AllowList) Authenticate(email, password string) (*User, bool) {
	e, ok := a.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	if subtle.ConstantTimeCompare([]byte(e.Password), []byte(password)) != 1 {
		return nil, false
	}
	return &User{ID: e.ID, Email: e.Email, Role: e.Role}, true
}

// DefaultEntries returns the built-in demo identities matching the demo
// patient roster.
func DefaultEntries() []Entry {
	return []Entry{
		{Email: "john@patient.com", Password: "patient123", ID: "patient-1", Role: RolePatient},
		{Email: "sarah@patient.com", Password: "patient123", ID: "patient-2", Role: RolePatient},
		{Email: "mike@patient.com", Password: "patient123", ID: "patient-3", Role: RolePatient},
		{Email: "emma@patient.com", Password: "patient123", ID: "patient-4", Role: RolePatient},
		{Email: "david@patient.com", Password: "patient123", ID: "patient-5", Role: RolePatient},
		{Email: "dr.smith@clinic.com", Password: "doctor123", ID: "clinician-1", Role: RoleClinician},
		{Email: "dr.jones@clinic.com", Password: "doctor123", ID: "clinician-2", Role: RoleClinician},
		{Email: "dr.wilson@clinic.com", Password: "doctor123", ID: "clinician-3", Role: RoleClinician},
	}
}
