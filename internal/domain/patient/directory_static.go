package patient

import (
	"context"
	"sync"
)

// StaticDirectory serves a fixed set of demo records from memory. It backs
// the portal when no database is configured and is the fixture source for
// tests. Reads hand out clones so the fixtures stay immutable.
type StaticDirectory struct {
	mu      sync.RWMutex
	byID    map[string]*Patient
	ordered []string
}

// NewStaticDirectory builds a directory over the given records. With no
// arguments it loads the built-in demo roster.
func NewStaticDirectory(records ...*Patient) *StaticDirectory {
	if len(records) == 0 {
		records = DemoPatients()
	}
	d := &StaticDirectory{byID: make(map[string]*Patient, len(records))}
	for _, p := range records {
		if _, dup := d.byID[p.ID]; dup {
			continue
		}
		d.byID[p.ID] = p.Clone()
		d.ordered = append(d.ordered, p.ID)
	}
	return d
}

func (d *StaticDirectory) FetchByID(_ context.Context, id string) (*Patient, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (d *StaticDirectory) FetchByQRCode(_ context.Context, code string) (*Patient, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, id := range d.ordered {
		if p := d.byID[id]; p.QRCode == code {
			return p.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (d *StaticDirectory) List(_ context.Context) ([]*Patient, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Patient, 0, len(d.ordered))
	for _, id := range d.ordered {
		out = append(out, d.byID[id].Clone())
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

// DemoPatients returns the built-in demo roster.
func DemoPatients() []*Patient {
	return []*Patient{
		{
			ID: "patient-1", Name: "John Smith", Age: 45, Avatar: "JS",
			QRCode:    "QR-JOHN-SMITH-001",
			Allergies: []string{"Penicillin", "Peanuts", "Latex"},
			Medications: []Medication{
				{Name: "Lisinopril", Dosage: "10mg", Frequency: "Once daily"},
				{Name: "Metformin", Dosage: "500mg", Frequency: "Twice daily"},
				{Name: "Atorvastatin", Dosage: "20mg", Frequency: "Once daily at bedtime"},
			},
			Appointments: []Appointment{
				{Type: "Cardiology Follow-up", Doctor: "Dr. Smith", Date: "2025-01-15", Time: "10:00 AM"},
				{Type: "Annual Physical", Doctor: "Dr. Wilson", Date: "2025-02-20", Time: "2:30 PM"},
			},
			LastVisit: "2024-12-10",
			BloodType: strPtr("A+"),
			EmergencyContact: &EmergencyContact{
				Name: "Jane Smith", Phone: "(555) 123-4567", Relation: "Spouse",
			},
			MedicalHistory: &MedicalHistory{
				Conditions: []string{"Hypertension", "Pre-diabetic", "High Cholesterol"},
				Surgeries: []Surgery{
					{Procedure: "Appendectomy", Date: "2010-05-15", Hospital: "City General Hospital"},
					{Procedure: "Knee Arthroscopy", Date: "2018-11-20", Hospital: "Sports Medicine Center"},
				},
				FamilyHistory: []string{"Heart disease (father)", "Type 2 Diabetes (mother)", "Stroke (grandfather)"},
				Lifestyle:     Lifestyle{Smoking: SmokingFormer, Alcohol: AlcoholOccasional, Exercise: ExerciseLight},
			},
		},
		{
			ID: "patient-2", Name: "Sarah Johnson", Age: 32, Avatar: "SJ",
			QRCode:    "QR-SARAH-JOHNSON-002",
			Allergies: []string{"Sulfa drugs", "Shellfish"},
			Medications: []Medication{
				{Name: "Levothyroxine", Dosage: "75mcg", Frequency: "Once daily in morning"},
				{Name: "Vitamin D3", Dosage: "2000 IU", Frequency: "Once daily"},
			},
			Appointments: []Appointment{
				{Type: "Endocrinology", Doctor: "Dr. Jones", Date: "2025-01-22", Time: "11:00 AM"},
			},
			LastVisit: "2024-11-28",
			BloodType: strPtr("O-"),
			EmergencyContact: &EmergencyContact{
				Name: "Michael Johnson", Phone: "(555) 234-5678", Relation: "Brother",
			},
			MedicalHistory: &MedicalHistory{
				Conditions:    []string{"Hypothyroidism", "Vitamin D Deficiency"},
				Surgeries:     []Surgery{},
				FamilyHistory: []string{"Thyroid disorders (mother)", "Autoimmune diseases (aunt)"},
				Lifestyle:     Lifestyle{Smoking: SmokingNever, Alcohol: AlcoholNone, Exercise: ExerciseModerate},
			},
		},
		{
			ID: "patient-3", Name: "Mike Chen", Age: 28, Avatar: "MC",
			QRCode:    "QR-MIKE-CHEN-003",
			Allergies: []string{"None known"},
			Medications: []Medication{
				{Name: "Albuterol Inhaler", Dosage: "90mcg", Frequency: "As needed for asthma"},
				{Name: "Fluticasone", Dosage: "110mcg", Frequency: "Twice daily"},
			},
			Appointments: []Appointment{
				{Type: "Pulmonology", Doctor: "Dr. Smith", Date: "2025-01-18", Time: "3:00 PM"},
			},
			LastVisit: "2024-12-05",
			BloodType: strPtr("B+"),
			EmergencyContact: &EmergencyContact{
				Name: "Lisa Chen", Phone: "(555) 345-6789", Relation: "Mother",
			},
			MedicalHistory: &MedicalHistory{
				Conditions:    []string{"Asthma (moderate persistent)"},
				Surgeries:     []Surgery{},
				FamilyHistory: []string{"Asthma (brother)", "Allergies (mother)"},
				Lifestyle:     Lifestyle{Smoking: SmokingNever, Alcohol: AlcoholOccasional, Exercise: ExerciseActive},
			},
		},
		{
			ID: "patient-4", Name: "Emma Davis", Age: 56, Avatar: "ED",
			QRCode:    "QR-EMMA-DAVIS-004",
			Allergies: []string{"Aspirin", "Codeine", "Iodine"},
			Medications: []Medication{
				{Name: "Amlodipine", Dosage: "5mg", Frequency: "Once daily"},
				{Name: "Omeprazole", Dosage: "20mg", Frequency: "Once daily before breakfast"},
				{Name: "Calcium + Vitamin D", Dosage: "600mg/400IU", Frequency: "Twice daily"},
				{Name: "Gabapentin", Dosage: "300mg", Frequency: "Three times daily"},
			},
			Appointments: []Appointment{
				{Type: "Rheumatology", Doctor: "Dr. Wilson", Date: "2025-01-25", Time: "9:00 AM"},
				{Type: "Pain Management", Doctor: "Dr. Jones", Date: "2025-02-08", Time: "1:00 PM"},
			},
			LastVisit: "2024-12-15",
			BloodType: strPtr("AB+"),
			EmergencyContact: &EmergencyContact{
				Name: "Robert Davis", Phone: "(555) 456-7890", Relation: "Husband",
			},
			MedicalHistory: &MedicalHistory{
				Conditions: []string{"Rheumatoid Arthritis", "GERD", "Osteoporosis", "Chronic Pain Syndrome"},
				Surgeries: []Surgery{
					{Procedure: "Total Hip Replacement", Date: "2020-03-10", Hospital: "Orthopedic Specialty Hospital"},
					{Procedure: "Carpal Tunnel Release", Date: "2019-07-22", Hospital: "Outpatient Surgery Center"},
				},
				FamilyHistory: []string{"Arthritis (mother)", "Osteoporosis (grandmother)"},
				Lifestyle:     Lifestyle{Smoking: SmokingNever, Alcohol: AlcoholNone, Exercise: ExerciseLight},
			},
		},
		{
			ID: "patient-5", Name: "David Martinez", Age: 41, Avatar: "DM",
			QRCode:    "QR-DAVID-MARTINEZ-005",
			Allergies: []string{"Morphine", "Bee stings"},
			Medications: []Medication{
				{Name: "Sertraline", Dosage: "50mg", Frequency: "Once daily"},
				{Name: "Losartan", Dosage: "50mg", Frequency: "Once daily"},
				{Name: "EpiPen", Dosage: "0.3mg", Frequency: "Emergency use only"},
			},
			Appointments: []Appointment{
				{Type: "Psychiatry", Doctor: "Dr. Smith", Date: "2025-01-30", Time: "4:00 PM"},
			},
			LastVisit: "2024-12-01",
			BloodType: strPtr("O+"),
			EmergencyContact: &EmergencyContact{
				Name: "Maria Martinez", Phone: "(555) 567-8901", Relation: "Sister",
			},
			MedicalHistory: &MedicalHistory{
				Conditions:    []string{"Generalized Anxiety Disorder", "Hypertension", "Severe Bee Sting Allergy"},
				Surgeries:     []Surgery{},
				FamilyHistory: []string{"Anxiety disorders (mother)", "Hypertension (father)"},
				Lifestyle:     Lifestyle{Smoking: SmokingNever, Alcohol: AlcoholModerate, Exercise: ExerciseModerate},
			},
		},
	}
}
