package credential

import (
	"github.com/healthconnect/portal/internal/domain/patient"
)

// Projection is the field-limited view of a record a scanner is allowed to
// see. Every field is optional and omitted from JSON when withheld: a
// withheld key never appears, not even as null, and optionals absent from
// the source stay absent.
type Projection struct {
	ID               string                    `json:"id,omitempty"`
	Name             string                    `json:"name,omitempty"`
	Age              *int                      `json:"age,omitempty"`
	Avatar           string                    `json:"avatar,omitempty"`
	QRCode           string                    `json:"qrCode,omitempty"`
	Allergies        []string                  `json:"allergies,omitempty"`
	Medications      []patient.Medication      `json:"medications,omitempty"`
	Appointments     []patient.Appointment     `json:"appointments,omitempty"`
	LastVisit        string                    `json:"lastVisit,omitempty"`
	BloodType        *string                   `json:"bloodType,omitempty"`
	EmergencyContact *patient.EmergencyContact `json:"emergencyContact,omitempty"`
	MedicalHistory   *patient.MedicalHistory   `json:"medicalHistory,omitempty"`
}

// Project applies the access policy to a record. The input is never
// mutated, slices and nested optionals are copied, and the view is derived
// fresh on every call. Projections have no identity and are never cached.
func Project(p *patient.Patient, level AccessLevel) *Projection {
	fields, all := AllowedFields(level)
	if all {
		return fullProjection(p)
	}

	proj := &Projection{}
	for _, f := range fields {
		switch f {
		case "id":
			proj.ID = p.ID
		case "name":
			proj.Name = p.Name
		case "age":
			age := p.Age
			proj.Age = &age
		case "avatar":
			proj.Avatar = p.Avatar
		case "allergies":
			proj.Allergies = append([]string(nil), p.Allergies...)
		case "medications":
			proj.Medications = append([]patient.Medication(nil), p.Medications...)
		case "qrCode":
			proj.QRCode = p.QRCode
		case "lastVisit":
			proj.LastVisit = p.LastVisit
		}
	}
	return proj
}

func fullProjection(p *patient.Patient) *Projection {
	cp := p.Clone()
	age := cp.Age
	return &Projection{
		ID:               cp.ID,
		Name:             cp.Name,
		Age:              &age,
		Avatar:           cp.Avatar,
		QRCode:           cp.QRCode,
		Allergies:        cp.Allergies,
		Medications:      cp.Medications,
		Appointments:     cp.Appointments,
		LastVisit:        cp.LastVisit,
		BloodType:        cp.BloodType,
		EmergencyContact: cp.EmergencyContact,
		MedicalHistory:   cp.MedicalHistory,
	}
}
