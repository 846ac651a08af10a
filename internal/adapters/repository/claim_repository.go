package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// EventClaimDecided is the outbox event type emitted on every terminal
// claim decision. The relay matches on it when publishing to the broker.
const EventClaimDecided = "claim.decided"

const outboxChannel = "outbox_channel"

type ClaimRepository struct {
	db *sql.DB
}

var _ ports.ClaimRepository = (*ClaimRepository)(nil)

func NewClaimRepository(db *sql.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

const claimColumns = `request_id, emp_id, request_amount, approved_amount, copay_amount, status, hospital_id, created_at, approved_at`

func (r *ClaimRepository) Create(ctx context.Context, claim domain.ClaimRequest) (*domain.ClaimRequest, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO claim_requests (emp_id, request_amount, status, hospital_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING request_id`,
		claim.EmpID, claim.RequestAmount, string(claim.Status), claim.HospitalID, claim.CreatedAt,
	).Scan(&claim.RequestID)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepository) All(ctx context.Context) ([]domain.ClaimRequest, error) {
	return r.query(ctx,
		`SELECT `+claimColumns+` FROM claim_requests
		 ORDER BY created_at DESC NULLS LAST, request_id DESC`)
}

func (r *ClaimRepository) ByEmployee(ctx context.Context, empID int64) ([]domain.ClaimRequest, error) {
	return r.query(ctx,
		`SELECT `+claimColumns+` FROM claim_requests
		 WHERE emp_id = $1 ORDER BY request_id DESC`,
		empID)
}

// Decide performs the terminal transition inside a single transaction:
// lock the claim row, verify it is still PENDING, compute and store the
// copay split on approval, decrement the policy's remaining coverage, and
// record the outbox event so the relay can publish it after commit.
func (r *ClaimRepository) Decide(ctx context.Context, requestID int64, decision domain.Decision, outboxPayload []byte) (*domain.ClaimRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var claim domain.ClaimRequest
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT request_id, emp_id, request_amount, status, hospital_id, created_at
		 FROM claim_requests WHERE request_id = $1
		 FOR UPDATE`,
		requestID,
	).Scan(&claim.RequestID, &claim.EmpID, &claim.RequestAmount, &status, &claim.HospitalID, &claim.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}

	claim.Status = domain.ClaimStatus(status)
	if claim.Status != domain.ClaimPending {
		return nil, domain.ErrAlreadyDecided
	}

	switch decision {
	case domain.DecisionApprove:
		var copayPct float64
		err = tx.QueryRowContext(ctx,
			`SELECT copay_percentage FROM hospitals WHERE id = $1`,
			claim.HospitalID,
		).Scan(&copayPct)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHospitalNotFound
		}
		if err != nil {
			return nil, err
		}

		copay := domain.ComputeCopay(claim.RequestAmount, copayPct)
		approved := domain.ComputeApprovedAmount(claim.RequestAmount, copay)

		err = tx.QueryRowContext(ctx,
			`UPDATE claim_requests
			 SET status = $1, approved_amount = $2, copay_amount = $3, approved_at = NOW()
			 WHERE request_id = $4
			 RETURNING approved_at`,
			string(domain.ClaimApproved), approved, copay, requestID,
		).Scan(&claim.ApprovedAt)
		if err != nil {
			return nil, err
		}
		claim.Status = domain.ClaimApproved
		claim.ApprovedAmount = &approved
		claim.CopayAmount = &copay

		// Remaining coverage is monotonically non-increasing; a
		// concurrent approval that raced past validation is floored at 0.
		if _, err := tx.ExecContext(ctx,
			`UPDATE insurances
			 SET amount_remaining = GREATEST(amount_remaining - $1, 0)
			 WHERE emp_id = $2`,
			approved, claim.EmpID,
		); err != nil {
			return nil, err
		}

	case domain.DecisionReject:
		if _, err := tx.ExecContext(ctx,
			`UPDATE claim_requests SET status = $1 WHERE request_id = $2`,
			string(domain.ClaimRejected), requestID,
		); err != nil {
			return nil, err
		}
		claim.Status = domain.ClaimRejected

	default:
		return nil, domain.ErrAlreadyDecided
	}

	eventID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO outbox_events (id, event_type, payload, created_at)
		 VALUES ($1, $2, $3::jsonb || jsonb_build_object('emp_id', $4::bigint), NOW())`,
		eventID, EventClaimDecided, outboxPayload, claim.EmpID,
	); err != nil {
		return nil, err
	}

	// pg_notify is transactional: the relay only hears about the event
	// once the decision is committed.
	if _, err := tx.ExecContext(ctx,
		`SELECT pg_notify($1, $2)`, outboxChannel, eventID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepository) query(ctx context.Context, q string, args ...any) ([]domain.ClaimRequest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.ClaimRequest
	for rows.Next() {
		var c domain.ClaimRequest
		var approved, copay sql.NullFloat64
		var status string
		var hospitalID sql.NullInt64
		var createdAt, approvedAt sql.NullTime
		if err := rows.Scan(&c.RequestID, &c.EmpID, &c.RequestAmount, &approved, &copay, &status, &hospitalID, &createdAt, &approvedAt); err != nil {
			return nil, err
		}
		c.Status = domain.ClaimStatus(status)
		if approved.Valid {
			c.ApprovedAmount = &approved.Float64
		}
		if copay.Valid {
			c.CopayAmount = &copay.Float64
		}
		if hospitalID.Valid {
			c.HospitalID = hospitalID.Int64
		}
		if createdAt.Valid {
			t := createdAt.Time
			c.CreatedAt = &t
		}
		if approvedAt.Valid {
			t := approvedAt.Time
			c.ApprovedAt = &t
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
