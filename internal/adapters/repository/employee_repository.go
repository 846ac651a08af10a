package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type EmployeeRepository struct {
	db *sql.DB
}

var _ ports.EmployeeRepository = (*EmployeeRepository)(nil)

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var emp domain.Employee
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email, role, password, created_at
		 FROM employees WHERE email = $1`,
		email,
	).Scan(&emp.ID, &emp.Name, &emp.Phone, &emp.Email, &role, &emp.Password, &emp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	emp.Role = domain.ParseRole(role)
	return &emp, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email, role, password, created_at
		 FROM employees WHERE id = $1`,
		id,
	).Scan(&emp.ID, &emp.Name, &emp.Phone, &emp.Email, &role, &emp.Password, &emp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	emp.Role = domain.ParseRole(role)
	return &emp, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, emp domain.Employee) (*domain.Employee, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO employees (name, phone, email, role, password, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		emp.Name, emp.Phone, emp.Email, string(emp.Role), emp.Password, emp.CreatedAt,
	).Scan(&emp.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return &emp, nil
}
