package credential

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthconnect/portal/internal/platform/auth"
)

var errDirDown = errors.New("directory down")

func testHandler(dir *mockDirectory) *Handler {
	return NewHandler(NewService(dir, NewIssuer()))
}

func doRequest(h echo.HandlerFunc, req *http.Request, user *auth.User, params ...string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(auth.UserContextKey, user)
	}
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	return rec, h(c)
}

func clinician() *auth.User {
	return &auth.User{ID: "clinician-1", Email: "dr.smith@clinic.com", Role: auth.RoleClinician}
}

func patientUser(id string) *auth.User {
	return &auth.User{ID: id, Email: id + "@patient.com", Role: auth.RolePatient}
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an HTTP error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestIssueCredential_Clinician(t *testing.T) {
	h := testHandler(newMockDirectory(fullRecord()))

	body := `{"access_level":"time-limited","hours":24}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec, err := doRequest(h.IssueCredential, req, clinician(), "id", "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var issued IssuedCredential
	if err := json.Unmarshal(rec.Body.Bytes(), &issued); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if issued.Token == "" {
		t.Error("expected a token")
	}
	if issued.AccessLevel != AccessTimeLimited {
		t.Errorf("access level = %q", issued.AccessLevel)
	}
	if issued.ExpiresAt == nil {
		t.Error("expected an expiry")
	}
}

func TestIssueCredential_PatientOwnRecord(t *testing.T) {
	h := testHandler(newMockDirectory(fullRecord()))

	body := `{"access_level":"emergency"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec, err := doRequest(h.IssueCredential, req, patientUser("patient-1"), "id", "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestIssueCredential_PatientOtherRecordForbidden(t *testing.T) {
	h := testHandler(newMockDirectory(fullRecord()))

	body := `{"access_level":"full"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	_, err := doRequest(h.IssueCredential, req, patientUser("patient-2"), "id", "patient-1")
	if code := httpStatus(t, err); code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}
}

func TestIssueCredential_NoSession(t *testing.T) {
	h := testHandler(newMockDirectory(fullRecord()))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"access_level":"full"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	_, err := doRequest(h.IssueCredential, req, nil, "id", "patient-1")
	if code := httpStatus(t, err); code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestIssueCredential_InvalidDuration(t *testing.T) {
	h := testHandler(newMockDirectory(fullRecord()))

	body := `{"access_level":"time-limited","hours":169}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	_, err := doRequest(h.IssueCredential, req, clinician(), "id", "patient-1")
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestIssueCredential_UnknownPatient(t *testing.T) {
	h := testHandler(newMockDirectory())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"access_level":"full"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	_, err := doRequest(h.IssueCredential, req, clinician(), "id", "patient-404")
	if code := httpStatus(t, err); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestIssueCredentialQR_ReturnsPNG(t *testing.T) {
	h := testHandler(newMockDirectory(fullRecord()))

	req := httptest.NewRequest(http.MethodGet, "/?access_level=emergency", nil)
	rec, err := doRequest(h.IssueCredentialQR, req, clinician(), "id", "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	// PNG magic bytes.
	body := rec.Body.Bytes()
	if len(body) < 8 || body[1] != 'P' || body[2] != 'N' || body[3] != 'G' {
		t.Error("response body is not a PNG")
	}
}

func TestResolveCredential_OK(t *testing.T) {
	h := testHandler(newMockDirectory(fullRecord()))

	token, err := Encode(Credential{PatientID: "patient-1", Level: AccessEmergency})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	body, _ := json.Marshal(resolveRequest{Token: token})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec, err := doRequest(h.ResolveCredential, req, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := m["medicalHistory"]; ok {
		t.Error("emergency resolve leaked medicalHistory")
	}
	if _, ok := m["allergies"]; !ok {
		t.Error("emergency resolve missing allergies")
	}
}

func TestResolveCredential_ErrorMapping(t *testing.T) {
	issued := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	exp := issued.Add(-time.Hour)
	expiredToken, err := Encode(Credential{PatientID: "patient-1", Level: AccessTimeLimited, ExpiresAt: &exp})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	goneToken, err := Encode(Credential{PatientID: "patient-404", Level: AccessFull})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"malformed", "garbage", http.StatusBadRequest},
		{"empty", "", http.StatusBadRequest},
		{"expired", expiredToken, http.StatusGone},
		{"unknown patient", goneToken, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler(newMockDirectory(fullRecord()))
			body, _ := json.Marshal(resolveRequest{Token: tt.token})
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

			_, err := doRequest(h.ResolveCredential, req, nil)
			if code := httpStatus(t, err); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestResolveCredential_DirectoryDown(t *testing.T) {
	dir := newMockDirectory(fullRecord())
	dir.err = errDirDown
	h := testHandler(dir)

	token, err := Encode(Credential{PatientID: "patient-1", Level: AccessFull})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	body, _ := json.Marshal(resolveRequest{Token: token})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	_, err = doRequest(h.ResolveCredential, req, nil)
	if code := httpStatus(t, err); code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", code)
	}
}
