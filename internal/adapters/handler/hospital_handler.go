package handler

import (
	"net/http"
	"strconv"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type HospitalHandler struct {
	hospitalService ports.HospitalService
}

func NewHospitalHandler(hospitals ports.HospitalService) *HospitalHandler {
	return &HospitalHandler{hospitalService: hospitals}
}

// All serves GET /api/hospitals/all with an optional ?search= term
// matched against name, city and specialties.
func (h *HospitalHandler) All(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")

	var (
		hospitals []domain.Hospital
		err       error
	)
	if term != "" {
		hospitals, err = h.hospitalService.Search(r.Context(), term)
	} else {
		hospitals, err = h.hospitalService.All(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeHospitals(w, hospitals)
}

// ByCity serves GET /api/hospitals/city/{city}.
func (h *HospitalHandler) ByCity(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitalService.ByCity(r.Context(), r.PathValue("city"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeHospitals(w, hospitals)
}

// ByState serves GET /api/hospitals/state/{state}.
func (h *HospitalHandler) ByState(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitalService.ByState(r.Context(), r.PathValue("state"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeHospitals(w, hospitals)
}

// ByID serves GET /api/hospitals/{id}.
func (h *HospitalHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid hospital id", http.StatusBadRequest)
		return
	}

	hospital, err := h.hospitalService.ByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hospital)
}

func writeHospitals(w http.ResponseWriter, hospitals []domain.Hospital) {
	if hospitals == nil {
		hospitals = []domain.Hospital{}
	}
	writeJSON(w, http.StatusOK, hospitals)
}
