package domain

import "strings"

// Hospital is a network hospital a claim can be raised against.
// Specialties is kept as a comma-separated string on the wire, matching
// the portal contract; use SpecialtyList for the parsed form.
type Hospital struct {
	ID              int64   `json:"id"`
	HospitalName    string  `json:"hospitalName"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Address         string  `json:"address"`
	Phone           string  `json:"phone"`
	Specialties     string  `json:"specialties"`
	CopayPercentage float64 `json:"copayPercentage"`
}

func (h *Hospital) SpecialtyList() []string {
	if h.Specialties == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(h.Specialties, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// MatchesSearch reports whether the hospital matches a free-text search
// term against name, city or specialties. An empty term matches.
func (h *Hospital) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(h.HospitalName), term) ||
		strings.Contains(strings.ToLower(h.City), term) ||
		strings.Contains(strings.ToLower(h.Specialties), term)
}
