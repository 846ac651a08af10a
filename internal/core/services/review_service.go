package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// ReviewService is the administrator pipeline over the claim list: load,
// filter, sort, decide. Filtering and sorting are pure functions so the
// /filtered endpoint and its tests share one implementation.
type ReviewService struct {
	claimRepo ports.ClaimRepository
}

var _ ports.ReviewService = (*ReviewService)(nil)

func NewReviewService(claimRepo ports.ClaimRepository) *ReviewService {
	return &ReviewService{claimRepo: claimRepo}
}

func (s *ReviewService) AllClaims(ctx context.Context) ([]domain.ClaimRequest, error) {
	return s.claimRepo.All(ctx)
}

func (s *ReviewService) FilteredClaims(ctx context.Context, status domain.ClaimStatus, from, to *time.Time) ([]domain.ClaimRequest, error) {
	claims, err := s.claimRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	return SortClaims(FilterClaims(claims, status, from, to)), nil
}

// Decide drives one of the two legal terminal transitions. The repository
// rejects non-pending claims with domain.ErrAlreadyDecided and records the
// outbox event in the same transaction as the status flip.
func (s *ReviewService) Decide(ctx context.Context, requestID int64, decision domain.Decision) (*domain.ClaimRequest, error) {
	payload, err := json.Marshal(ports.ClaimDecidedEvent{
		RequestID: requestID,
		Decision:  decision,
		DecidedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	claim, err := s.claimRepo.Decide(ctx, requestID, decision, payload)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("request_id", requestID).
		Str("decision", string(decision)).
		Str("status", string(claim.Status)).
		Msg("claim decided")

	return claim, nil
}

// FilterClaims keeps claims matching the status (ALL passes everything)
// and the inclusive date range. Bounds apply from the start of the from-day
// to the end of the to-day; a claim without a creation timestamp is
// excluded whenever either bound is active. With no bounds and ALL this is
// the identity filter.
func FilterClaims(claims []domain.ClaimRequest, status domain.ClaimStatus, from, to *time.Time) []domain.ClaimRequest {
	filtered := make([]domain.ClaimRequest, 0, len(claims))

	var lower, upper time.Time
	if from != nil {
		lower = startOfDay(*from)
	}
	if to != nil {
		upper = endOfDay(*to)
	}

	for _, c := range claims {
		if status != domain.StatusAll && c.Status != status {
			continue
		}
		if from != nil || to != nil {
			if c.CreatedAt == nil {
				continue
			}
			if from != nil && c.CreatedAt.Before(lower) {
				continue
			}
			if to != nil && c.CreatedAt.After(upper) {
				continue
			}
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// SortClaims orders claims most recent first. Dated claims always precede
// undated ones; within each group ties fall back to request id descending.
// This keeps the comparator transitive even with partially populated
// timestamps.
func SortClaims(claims []domain.ClaimRequest) []domain.ClaimRequest {
	sorted := make([]domain.ClaimRequest, len(claims))
	copy(sorted, claims)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.CreatedAt != nil && b.CreatedAt != nil:
			if !a.CreatedAt.Equal(*b.CreatedAt) {
				return a.CreatedAt.After(*b.CreatedAt)
			}
			return a.RequestID > b.RequestID
		case a.CreatedAt != nil:
			return true
		case b.CreatedAt != nil:
			return false
		default:
			return a.RequestID > b.RequestID
		}
	})
	return sorted
}

// CountByStatus returns the number of claims with the given status; ALL
// counts everything.
func CountByStatus(claims []domain.ClaimRequest, status domain.ClaimStatus) int {
	if status == domain.StatusAll {
		return len(claims)
	}
	n := 0
	for _, c := range claims {
		if c.Status == status {
			n++
		}
	}
	return n
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
