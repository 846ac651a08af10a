package services

import (
	"context"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type HospitalDirectory struct {
	hospitalRepo ports.HospitalRepository
}

var _ ports.HospitalService = (*HospitalDirectory)(nil)

func NewHospitalDirectory(hospitalRepo ports.HospitalRepository) *HospitalDirectory {
	return &HospitalDirectory{hospitalRepo: hospitalRepo}
}

func (s *HospitalDirectory) All(ctx context.Context) ([]domain.Hospital, error) {
	return s.hospitalRepo.All(ctx)
}

func (s *HospitalDirectory) ByCity(ctx context.Context, city string) ([]domain.Hospital, error) {
	return s.hospitalRepo.ByCity(ctx, city)
}

func (s *HospitalDirectory) ByState(ctx context.Context, state string) ([]domain.Hospital, error) {
	return s.hospitalRepo.ByState(ctx, state)
}

func (s *HospitalDirectory) ByID(ctx context.Context, id int64) (*domain.Hospital, error) {
	return s.hospitalRepo.ByID(ctx, id)
}

// Search filters the full directory with a free-text term against name,
// city and specialties, matching the portal's network-hospitals screen.
func (s *HospitalDirectory) Search(ctx context.Context, term string) ([]domain.Hospital, error) {
	hospitals, err := s.hospitalRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return hospitals, nil
	}
	matched := make([]domain.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if h.MatchesSearch(term) {
			matched = append(matched, h)
		}
	}
	return matched, nil
}
