package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"kraal-bknd/internal/location"
	"kraal-bknd/internal/middleware"
	"kraal-bknd/internal/models"
)

type LocationHandler struct {
	store    *location.Store
	provider location.Provider
	logr     *zap.Logger
}

func NewLocationHandler(store *location.Store, provider location.Provider, logr *zap.Logger) *LocationHandler {
	return &LocationHandler{store: store, provider: provider, logr: logr}
}

type locationResponse struct {
	Location models.BuyerLocation `json:"location"`
	Stale    bool                 `json:"stale"`
}

// GetLocation returns the caller's current location snapshot plus staleness.
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyerID := middleware.UserID(ctx)

	loc, err := h.store.Get(ctx, buyerID)
	if err != nil {
		h.logr.Error("failed to load buyer location", zap.Error(err), zap.String("buyer_id", buyerID))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to load location",
		})
		return
	}

	writeJSON(w, http.StatusOK, locationResponse{Location: loc, Stale: h.store.IsStale(loc)})
}

type updateLocationRequest struct {
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Province  *string  `json:"province,omitempty"`
	Country   *string  `json:"country,omitempty"`
	AccuracyM *float64 `json:"accuracy_m,omitempty"`
}

// UpdateLocation shallow-merges the supplied fields into the caller's
// location. Lat and lng must come together.
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyerID := middleware.UserID(ctx)

	var req updateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid payload",
		})
		return
	}

	if (req.Lat == nil) != (req.Lng == nil) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "lat and lng must be supplied together",
		})
		return
	}

	patch := location.Patch{
		Province:  req.Province,
		Country:   req.Country,
		AccuracyM: req.AccuracyM,
	}
	if req.Lat != nil {
		if err := models.ValidateCoordinates(*req.Lat, *req.Lng); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
			return
		}
		patch.Coordinate = &models.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
	}

	loc, err := h.store.Set(ctx, buyerID, patch)
	if err != nil {
		h.logr.Error("failed to update buyer location", zap.Error(err), zap.String("buyer_id", buyerID))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to update location",
		})
		return
	}

	writeJSON(w, http.StatusOK, locationResponse{Location: loc, Stale: false})
}

// AcquireGPS runs a device-location acquisition through the configured
// provider and stores the fix. Failures come back as errors, never as a
// silently defaulted location.
func (h *LocationHandler) AcquireGPS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyerID := middleware.UserID(ctx)

	loc, err := h.store.AcquireGPS(ctx, buyerID, h.provider)
	if err != nil {
		switch {
		case errors.Is(err, location.ErrPermissionDenied):
			writeJSON(w, http.StatusForbidden, map[string]string{
				"error": "location permission denied",
			})
		case errors.Is(err, location.ErrSuperseded):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "superseded by a newer location request",
			})
		default:
			h.logr.Warn("gps acquisition failed", zap.Error(err), zap.String("buyer_id", buyerID))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "could not acquire device location",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, locationResponse{Location: loc, Stale: false})
}

// ClearLocation resets the caller to the default-country-only state.
func (h *LocationHandler) ClearLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyerID := middleware.UserID(ctx)

	if err := h.store.Clear(ctx, buyerID); err != nil {
		h.logr.Error("failed to clear buyer location", zap.Error(err), zap.String("buyer_id", buyerID))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to clear location",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
