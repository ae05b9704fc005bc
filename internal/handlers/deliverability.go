package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kraal-bknd/internal/middleware"
	"kraal-bknd/internal/models"
	"kraal-bknd/internal/services"
)

type DeliverabilityHandler struct {
	service *services.DeliverabilityService
	logr    *zap.Logger
}

func NewDeliverabilityHandler(svc *services.DeliverabilityService, logr *zap.Logger) *DeliverabilityHandler {
	return &DeliverabilityHandler{service: svc, logr: logr}
}

// GetListingDeliverability returns the status, action and display banner for
// the authenticated buyer against one listing. This is the server-side
// enforcement point; checkout re-runs the same decision.
func (h *DeliverabilityHandler) GetListingDeliverability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid listing id",
		})
		return
	}

	buyerID := middleware.UserID(ctx)
	if buyerID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
		})
		return
	}

	resp, err := h.service.ForListing(ctx, listingID, buyerID)
	if err != nil {
		h.logr.Error("failed to resolve deliverability", zap.Error(err), zap.String("listing_id", listingID.String()))
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "listing not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type previewBuyer struct {
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Province string   `json:"province,omitempty"`
	Country  string   `json:"country,omitempty"`
}

type previewRequest struct {
	ServiceArea   json.RawMessage `json:"service_area"`
	SellerCountry string          `json:"seller_country"`
	Buyer         previewBuyer    `json:"buyer"`
}

// PreviewCoverage resolves a service area against a simulated buyer. Sellers
// use it to sanity-check their delivery configuration before publishing.
func (h *DeliverabilityHandler) PreviewCoverage(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid payload",
		})
		return
	}

	area, err := models.UnmarshalServiceArea(req.ServiceArea)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	sim := services.SimulatedBuyer{
		Province: req.Buyer.Province,
		Country:  req.Buyer.Country,
	}
	if req.Buyer.Lat != nil && req.Buyer.Lng != nil {
		if err := models.ValidateCoordinates(*req.Buyer.Lat, *req.Buyer.Lng); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
			return
		}
		sim.Coordinate = &models.Coordinate{Lat: *req.Buyer.Lat, Lng: *req.Buyer.Lng}
	}

	resp := h.service.Preview(area, req.SellerCountry, sim)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
