package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type InsuranceRepository struct {
	db *sql.DB
}

var _ ports.InsuranceRepository = (*InsuranceRepository)(nil)

func NewInsuranceRepository(db *sql.DB) *InsuranceRepository {
	return &InsuranceRepository{db: db}
}

func (r *InsuranceRepository) FindByEmployee(ctx context.Context, empID int64) (*domain.Insurance, error) {
	var ins domain.Insurance
	err := r.db.QueryRowContext(ctx,
		`SELECT i.id, i.emp_id, p.package_name, i.amount_remaining
		 FROM insurances i
		 JOIN insurance_packages p ON p.id = i.package_id
		 WHERE i.emp_id = $1`,
		empID,
	).Scan(&ins.ID, &ins.EmpID, &ins.PackageName, &ins.AmountRemaining)
	if errors.Is(err, sql.ErrNoRows) {
		// No policy yet is a normal state, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *InsuranceRepository) Create(ctx context.Context, empID, packageID int64) (*domain.Insurance, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var pkg domain.InsurancePackage
	err = tx.QueryRowContext(ctx,
		`SELECT id, package_name, amount FROM insurance_packages WHERE id = $1`,
		packageID,
	).Scan(&pkg.ID, &pkg.PackageName, &pkg.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}

	ins := domain.Insurance{
		EmpID:           empID,
		PackageName:     pkg.PackageName,
		AmountRemaining: pkg.Amount,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO insurances (emp_id, package_id, amount_remaining)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		empID, packageID, pkg.Amount,
	).Scan(&ins.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrPolicyExists
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *InsuranceRepository) Packages(ctx context.Context) ([]domain.InsurancePackage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, package_name, amount FROM insurance_packages ORDER BY amount`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []domain.InsurancePackage
	for rows.Next() {
		var p domain.InsurancePackage
		if err := rows.Scan(&p.ID, &p.PackageName, &p.Amount); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (r *InsuranceRepository) Dependants(ctx context.Context, empID int64) ([]domain.Dependant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, age, gender, relation, emp_id
		 FROM dependants WHERE emp_id = $1 ORDER BY id`,
		empID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []domain.Dependant
	for rows.Next() {
		var d domain.Dependant
		if err := rows.Scan(&d.ID, &d.Name, &d.Age, &d.Gender, &d.Relation, &d.DependantFor); err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

func (r *InsuranceRepository) AddDependant(ctx context.Context, dep domain.Dependant) (*domain.Dependant, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO dependants (name, age, gender, relation, emp_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		dep.Name, dep.Age, dep.Gender, dep.Relation, dep.DependantFor,
	).Scan(&dep.ID)
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

func (r *InsuranceRepository) UpdateDependant(ctx context.Context, dep domain.Dependant) (*domain.Dependant, error) {
	err := r.db.QueryRowContext(ctx,
		`UPDATE dependants SET name = $1, age = $2, gender = $3, relation = $4
		 WHERE id = $5
		 RETURNING id, name, age, gender, relation, emp_id`,
		dep.Name, dep.Age, dep.Gender, dep.Relation, dep.ID,
	).Scan(&dep.ID, &dep.Name, &dep.Age, &dep.Gender, &dep.Relation, &dep.DependantFor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDependantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

func (r *InsuranceRepository) DeleteDependant(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dependants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDependantNotFound
	}
	return nil
}
