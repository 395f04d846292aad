package credential

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/healthconnect/portal/internal/domain/patient"
)

func fullRecord() *patient.Patient {
	bt := "O+"
	return &patient.Patient{
		ID:     "patient-1",
		Name:   "John Smith",
		Age:    45,
		Avatar: "https://example.com/avatars/john.png",
		QRCode: "QR-PATIENT-1",
		Allergies: []string{"Penicillin", "Peanuts"},
		Medications: []patient.Medication{
			{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily"},
		},
		Appointments: []patient.Appointment{
			{Date: "2026-04-01", Time: "10:00", Doctor: "Dr. Smith", Type: "checkup"},
		},
		LastVisit: "2026-02-20",
		BloodType: &bt,
		EmergencyContact: &patient.EmergencyContact{
			Name: "Jane Smith", Phone: "555-0100", Relation: "spouse",
		},
		MedicalHistory: &patient.MedicalHistory{
			Conditions: []string{"Hypertension"},
			Lifestyle: patient.Lifestyle{
				Smoking:  patient.SmokingNever,
				Alcohol:  patient.AlcoholOccasional,
				Exercise: patient.ExerciseModerate,
			},
		},
	}
}

func jsonKeys(t *testing.T, v interface{}) []string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestProject_EmergencyExactFieldSet(t *testing.T) {
	proj := Project(fullRecord(), AccessEmergency)

	got := jsonKeys(t, proj)
	want := append([]string(nil), EmergencyFields()...)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("emergency view has keys %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("emergency view has keys %v, want %v", got, want)
		}
	}
}

func TestProject_EmergencyWithholdsSensitiveFields(t *testing.T) {
	proj := Project(fullRecord(), AccessEmergency)

	if proj.BloodType != nil {
		t.Error("emergency view must not carry blood type")
	}
	if proj.EmergencyContact != nil {
		t.Error("emergency view must not carry emergency contact")
	}
	if proj.MedicalHistory != nil {
		t.Error("emergency view must not carry medical history")
	}
	if proj.Appointments != nil {
		t.Error("emergency view must not carry appointments")
	}
}

func TestProject_FullIsIdentity(t *testing.T) {
	p := fullRecord()
	proj := Project(p, AccessFull)

	if proj.ID != p.ID || proj.Name != p.Name || *proj.Age != p.Age {
		t.Error("full view should carry identity fields unchanged")
	}
	if proj.BloodType == nil || *proj.BloodType != *p.BloodType {
		t.Error("full view should carry blood type")
	}
	if proj.EmergencyContact == nil || proj.EmergencyContact.Name != p.EmergencyContact.Name {
		t.Error("full view should carry emergency contact")
	}
	if proj.MedicalHistory == nil || len(proj.MedicalHistory.Conditions) != 1 {
		t.Error("full view should carry medical history")
	}
	if len(proj.Appointments) != len(p.Appointments) {
		t.Error("full view should carry appointments")
	}
}

func TestProject_TimeLimitedSharesFullView(t *testing.T) {
	p := fullRecord()
	full := jsonKeys(t, Project(p, AccessFull))
	limited := jsonKeys(t, Project(p, AccessTimeLimited))

	if len(full) != len(limited) {
		t.Fatalf("time-limited keys %v differ from full keys %v", limited, full)
	}
	for i := range full {
		if full[i] != limited[i] {
			t.Fatalf("time-limited keys %v differ from full keys %v", limited, full)
		}
	}
}

func TestProject_AbsentOptionalsStayAbsent(t *testing.T) {
	p := fullRecord()
	p.BloodType = nil
	p.EmergencyContact = nil

	b, err := json.Marshal(Project(p, AccessFull))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["bloodType"]; ok {
		t.Error("absent bloodType must not appear in the view, not even as null")
	}
	if _, ok := m["emergencyContact"]; ok {
		t.Error("absent emergencyContact must not appear in the view")
	}
}

func TestProject_DoesNotAliasSource(t *testing.T) {
	p := fullRecord()
	proj := Project(p, AccessEmergency)

	proj.Allergies[0] = "mutated"
	proj.Medications[0].Name = "mutated"

	if p.Allergies[0] != "Penicillin" {
		t.Error("projection aliases the source allergies slice")
	}
	if p.Medications[0].Name != "Lisinopril" {
		t.Error("projection aliases the source medications slice")
	}
}
