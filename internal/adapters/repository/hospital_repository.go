package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type HospitalRepository struct {
	db *sql.DB
}

var _ ports.HospitalRepository = (*HospitalRepository)(nil)

func NewHospitalRepository(db *sql.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

const hospitalColumns = `id, hospital_name, city, state, address, phone, specialties, copay_percentage`

func (r *HospitalRepository) All(ctx context.Context) ([]domain.Hospital, error) {
	return r.query(ctx, `SELECT `+hospitalColumns+` FROM hospitals ORDER BY hospital_name`)
}

func (r *HospitalRepository) ByCity(ctx context.Context, city string) ([]domain.Hospital, error) {
	return r.query(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE LOWER(city) = LOWER($1) ORDER BY hospital_name`,
		city)
}

func (r *HospitalRepository) ByState(ctx context.Context, state string) ([]domain.Hospital, error) {
	return r.query(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE LOWER(state) = LOWER($1) ORDER BY hospital_name`,
		state)
}

func (r *HospitalRepository) ByID(ctx context.Context, id int64) (*domain.Hospital, error) {
	var h domain.Hospital
	err := r.db.QueryRowContext(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE id = $1`,
		id,
	).Scan(&h.ID, &h.HospitalName, &h.City, &h.State, &h.Address, &h.Phone, &h.Specialties, &h.CopayPercentage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrHospitalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HospitalRepository) query(ctx context.Context, q string, args ...any) ([]domain.Hospital, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hospitals []domain.Hospital
	for rows.Next() {
		var h domain.Hospital
		if err := rows.Scan(&h.ID, &h.HospitalName, &h.City, &h.State, &h.Address, &h.Phone, &h.Specialties, &h.CopayPercentage); err != nil {
			return nil, err
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, rows.Err()
}
