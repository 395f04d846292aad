package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGDirectory is the Postgres-backed Directory. Nested structures live in
// jsonb columns; pgx marshals them through encoding/json on both sides.
type PGDirectory struct {
	pool *pgxpool.Pool
}

func NewPGDirectory(pool *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{pool: pool}
}

const patientCols = `id, name, age, avatar, qr_code, allergies, medications,
	appointments, last_visit, blood_type, emergency_contact, medical_history`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Avatar, &p.QRCode, &p.Allergies,
		&p.Medications, &p.Appointments, &p.LastVisit, &p.BloodType,
		&p.EmergencyContact, &p.MedicalHistory)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *PGDirectory) FetchByID(ctx context.Context, id string) (*Patient, error) {
	p, err := scanPatient(d.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch patient %s: %w", id, err)
	}
	return p, nil
}

func (d *PGDirectory) FetchByQRCode(ctx context.Context, code string) (*Patient, error) {
	p, err := scanPatient(d.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE qr_code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch patient by qr code: %w", err)
	}
	return p, nil
}

func (d *PGDirectory) List(ctx context.Context) ([]*Patient, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var out []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return out, nil
}

// Upsert inserts or replaces a record. Used by the seed command; the portal
// itself treats the directory as read-only.
func (d *PGDirectory) Upsert(ctx context.Context, p *Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO patients (id, name, age, avatar, qr_code, allergies, medications,
			appointments, last_visit, blood_type, emergency_contact, medical_history)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, age = EXCLUDED.age, avatar = EXCLUDED.avatar,
			qr_code = EXCLUDED.qr_code, allergies = EXCLUDED.allergies,
			medications = EXCLUDED.medications, appointments = EXCLUDED.appointments,
			last_visit = EXCLUDED.last_visit, blood_type = EXCLUDED.blood_type,
			emergency_contact = EXCLUDED.emergency_contact,
			medical_history = EXCLUDED.medical_history, updated_at = NOW()`,
		p.ID, p.Name, p.Age, p.Avatar, p.QRCode, p.Allergies, p.Medications,
		p.Appointments, p.LastVisit, p.BloodType, p.EmergencyContact, p.MedicalHistory)
	if err != nil {
		return fmt.Errorf("upsert patient %s: %w", p.ID, err)
	}
	return nil
}
