package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Listing represents a livestock listing with the seller's declared
// service area stored as the tagged JSON envelope.
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID            uuid.UUID       `bun:",pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	SellerID      uuid.UUID       `bun:"seller_id,type:uuid" json:"seller_id"`
	Title         string          `json:"title"`
	Species       string          `json:"species"`
	PriceCents    int64           `bun:"price_cents" json:"price_cents"`
	SellerCountry string          `bun:"seller_country" json:"seller_country"`
	ServiceArea   json.RawMessage `bun:"service_area,type:jsonb" json:"service_area"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Area decodes the stored service-area envelope.
func (l *Listing) Area() (ServiceArea, error) {
	return UnmarshalServiceArea(l.ServiceArea)
}

// StatusDisplay is the three-part banner the UI renders for a
// deliverability outcome.
type StatusDisplay struct {
	Text  string `json:"text"`
	Color string `json:"color"` // green | amber | red
	Icon  string `json:"icon"`
}

// DeliverabilityResponse is returned by the listing deliverability and
// coverage-preview endpoints.
type DeliverabilityResponse struct {
	ListingID *uuid.UUID           `json:"listing_id,omitempty"`
	Status    DeliverabilityStatus `json:"status"`
	Action    ActionType           `json:"action"`
	Display   StatusDisplay        `json:"display"`
	Message   string               `json:"message,omitempty"`
}
