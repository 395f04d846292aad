package patient

import (
	"encoding/json"
	"fmt"
)

// Patient is the canonical medical record served by the directory. Records
// are read-only from the portal's perspective; everything that hands one
// out returns a copy so callers can never mutate shared state.
type Patient struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Age              int               `json:"age"`
	Avatar           string            `json:"avatar"`
	QRCode           string            `json:"qrCode"`
	Allergies        []string          `json:"allergies"`
	Medications      []Medication      `json:"medications"`
	Appointments     []Appointment     `json:"appointments,omitempty"`
	LastVisit        string            `json:"lastVisit"`
	BloodType        *string           `json:"bloodType,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	MedicalHistory   *MedicalHistory   `json:"medicalHistory,omitempty"`
}

// Medication is the canonical structured shape. Legacy records sometimes
// carry a bare string ("Aspirin") instead; UnmarshalJSON normalizes that
// at the data-model boundary so the union never reaches the rest of the
// system.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

func (m *Medication) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*m = Medication{Name: name}
		return nil
	}
	type alias Medication
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = Medication(a)
	return nil
}

type Appointment struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Doctor string `json:"doctor"`
	Type   string `json:"type"`
}

type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

type MedicalHistory struct {
	Conditions    []string  `json:"conditions"`
	Surgeries     []Surgery `json:"surgeries"`
	FamilyHistory []string  `json:"familyHistory"`
	Lifestyle     Lifestyle `json:"lifestyle"`
}

type Surgery struct {
	Procedure string `json:"procedure"`
	Date      string `json:"date"`
	Hospital  string `json:"hospital,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Lifestyle holds the three closed habit enums.
type Lifestyle struct {
	Smoking  SmokingStatus `json:"smoking"`
	Alcohol  AlcoholUse    `json:"alcohol"`
	Exercise ExerciseLevel `json:"exercise"`
}

type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingCurrent SmokingStatus = "current"
)

func (s SmokingStatus) Valid() bool {
	switch s {
	case SmokingNever, SmokingFormer, SmokingCurrent:
		return true
	}
	return false
}

type AlcoholUse string

const (
	AlcoholNone       AlcoholUse = "none"
	AlcoholOccasional AlcoholUse = "occasional"
	AlcoholModerate   AlcoholUse = "moderate"
	AlcoholHeavy      AlcoholUse = "heavy"
)

func (a AlcoholUse) Valid() bool {
	switch a {
	case AlcoholNone, AlcoholOccasional, AlcoholModerate, AlcoholHeavy:
		return true
	}
	return false
}

type ExerciseLevel string

const (
	ExerciseSedentary ExerciseLevel = "sedentary"
	ExerciseLight     ExerciseLevel = "light"
	ExerciseModerate  ExerciseLevel = "moderate"
	ExerciseActive    ExerciseLevel = "active"
)

func (e ExerciseLevel) Valid() bool {
	switch e {
	case ExerciseSedentary, ExerciseLight, ExerciseModerate, ExerciseActive:
		return true
	}
	return false
}

// Validate checks the structural invariants of a record before it enters
// the directory.
func (p *Patient) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must be non-negative, got %d", p.Age)
	}
	if h := p.MedicalHistory; h != nil {
		if !h.Lifestyle.Smoking.Valid() {
			return fmt.Errorf("invalid smoking status %q", h.Lifestyle.Smoking)
		}
		if !h.Lifestyle.Alcohol.Valid() {
			return fmt.Errorf("invalid alcohol use %q", h.Lifestyle.Alcohol)
		}
		if !h.Lifestyle.Exercise.Valid() {
			return fmt.Errorf("invalid exercise level %q", h.Lifestyle.Exercise)
		}
	}
	return nil
}

// Clone returns a deep copy. Slices and nested optionals are copied so the
// receiver stays untouched no matter what the caller does with the result.
func (p *Patient) Clone() *Patient {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Allergies = append([]string(nil), p.Allergies...)
	cp.Medications = append([]Medication(nil), p.Medications...)
	if p.Appointments != nil {
		cp.Appointments = append([]Appointment(nil), p.Appointments...)
	}
	if p.BloodType != nil {
		bt := *p.BloodType
		cp.BloodType = &bt
	}
	if p.EmergencyContact != nil {
		ec := *p.EmergencyContact
		cp.EmergencyContact = &ec
	}
	if p.MedicalHistory != nil {
		mh := *p.MedicalHistory
		mh.Conditions = append([]string(nil), p.MedicalHistory.Conditions...)
		mh.Surgeries = append([]Surgery(nil), p.MedicalHistory.Surgeries...)
		mh.FamilyHistory = append([]string(nil), p.MedicalHistory.FamilyHistory...)
		cp.MedicalHistory = &mh
	}
	return &cp
}
