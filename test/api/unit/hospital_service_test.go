package unit

import (
	"context"
	"testing"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/services"
	"github.com/mediease/insurance-portal-service/test/mocks"
)

func networkHospitals() []domain.Hospital {
	return []domain.Hospital{
		{ID: 1, HospitalName: "City Care Hospital", City: "Pune", State: "Maharashtra", Specialties: "Cardiology, Orthopedics", CopayPercentage: 20},
		{ID: 2, HospitalName: "Sunrise Medical Center", City: "Mumbai", State: "Maharashtra", Specialties: "Oncology", CopayPercentage: 15},
		{ID: 3, HospitalName: "Green Valley Clinic", City: "Bengaluru", State: "Karnataka", Specialties: "Dermatology, Cardiology", CopayPercentage: 10},
	}
}

func TestHospitalSearch(t *testing.T) {
	repo := mocks.NewMockHospitalRepository(networkHospitals()...)
	svc := services.NewHospitalDirectory(repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		term    string
		wantIDs []int64
	}{
		{"empty_term_returns_all", "", []int64{1, 2, 3}},
		{"match_by_name", "sunrise", []int64{2}},
		{"match_by_city", "pune", []int64{1}},
		{"match_by_specialty", "cardio", []int64{1, 3}},
		{"no_match", "neurology", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.term)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d hospitals, got %d", len(tt.wantIDs), len(got))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("position %d: expected hospital %d, got %d", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestHospitalByCityAndState(t *testing.T) {
	repo := mocks.NewMockHospitalRepository(networkHospitals()...)
	svc := services.NewHospitalDirectory(repo)
	ctx := context.Background()

	byCity, err := svc.ByCity(ctx, "Mumbai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byCity) != 1 || byCity[0].ID != 2 {
		t.Errorf("expected hospital 2 in Mumbai, got %+v", byCity)
	}

	byState, err := svc.ByState(ctx, "Maharashtra")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byState) != 2 {
		t.Errorf("expected 2 hospitals in Maharashtra, got %d", len(byState))
	}
}

func TestSpecialtyList(t *testing.T) {
	h := domain.Hospital{Specialties: "Cardiology, Orthopedics , ,Neurology"}
	got := h.SpecialtyList()
	want := []string{"Cardiology", "Orthopedics", "Neurology"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
