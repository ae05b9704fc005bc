package handlers

import (
	"net/http"

	"kraal-bknd/internal/geo"
	"kraal-bknd/internal/utils"
)

// ReferenceHandler serves the static province/country registries the
// seller-facing UI uses to author service areas.
type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// GetProvinces returns the province registry, optionally filtered by code.
func (h *ReferenceHandler) GetProvinces(w http.ResponseWriter, r *http.Request) {
	codes := utils.ParseQueryList(r.URL.Query(), "code")

	provinces := geo.Provinces
	if len(codes) > 0 {
		filtered := make([]geo.Province, 0, len(codes))
		for _, p := range provinces {
			for _, c := range codes {
				if p.Code == c {
					filtered = append(filtered, p)
					break
				}
			}
		}
		provinces = filtered
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"provinces": provinces,
		"count":     len(provinces),
	})
}

// GetCountries returns the supported country registry.
func (h *ReferenceHandler) GetCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"countries": geo.Countries,
		"count":     len(geo.Countries),
	})
}
