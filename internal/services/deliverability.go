package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"kraal-bknd/internal/geo"
	"kraal-bknd/internal/location"
	"kraal-bknd/internal/models"
)

// DeliverabilityService is the server-side enforcement point: it loads a
// listing's declared service area and resolves it against the buyer's
// stored location, so the decision the UI shows is the same one checkout
// enforces.
type DeliverabilityService struct {
	db    *bun.DB
	store *location.Store
}

func NewDeliverabilityService(db *bun.DB, store *location.Store) *DeliverabilityService {
	return &DeliverabilityService{db: db, store: store}
}

// ForListing resolves deliverability of one listing for one buyer.
func (s *DeliverabilityService) ForListing(ctx context.Context, listingID uuid.UUID, buyerID string) (*models.DeliverabilityResponse, error) {
	var l models.Listing
	err := s.db.NewSelect().Model(&l).Where("id = ?", listingID).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("listing %s not found", listingID)
		}
		return nil, fmt.Errorf("load listing: %w", err)
	}

	area, err := l.Area()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", listingID, err)
	}

	buyer, err := s.store.Get(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("load buyer location: %w", err)
	}

	status, action := ResolveAction(area, l.SellerCountry, buyer)
	id := l.ID
	return &models.DeliverabilityResponse{
		ListingID: &id,
		Status:    status,
		Action:    action,
		Display:   FormatStatus(status),
		Message:   StatusMessage(status, buyer),
	}, nil
}

// SimulatedBuyer is the buyer stand-in the coverage-preview tool feeds in.
type SimulatedBuyer struct {
	Coordinate *models.Coordinate
	Province   string
	Country    string
}

// Preview resolves a service area against a simulated buyer without touching
// the database or the buyer-location store. Sellers use it to sanity-check
// their own service-area configuration. A province-only simulation borrows
// the province centroid so radius and polygon areas still produce a verdict.
func (s *DeliverabilityService) Preview(area models.ServiceArea, sellerCountry string, sim SimulatedBuyer) models.DeliverabilityResponse {
	buyer := models.BuyerLocation{
		Coordinate: sim.Coordinate,
		Province:   sim.Province,
		Country:    sim.Country,
	}
	if buyer.Coordinate == nil && buyer.Province != "" {
		if centroid, ok := geo.ProvinceCentroid(buyer.Province); ok {
			buyer.Coordinate = &centroid
		}
	}

	status, action := ResolveAction(area, sellerCountry, buyer)
	return models.DeliverabilityResponse{
		Status:  status,
		Action:  action,
		Display: FormatStatus(status),
		Message: StatusMessage(status, buyer),
	}
}
