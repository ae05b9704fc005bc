package services

import (
	"kraal-bknd/internal/geo"
	"kraal-bknd/internal/models"
)

// WithinServiceArea decides whether a buyer falls inside a seller's declared
// service area. It dispatches purely on the area variant, has no side
// effects, and always returns a result rather than an error: missing or
// non-matching buyer data is a normal outcome carried in the reason code.
//
// On the radius path the computed distance is always populated, allowed or
// not, so callers can show "you are 58 km away" either way. The radius
// boundary is inclusive.
func WithinServiceArea(area models.ServiceArea, buyer models.BuyerLocation) models.GeofenceResult {
	switch a := area.(type) {
	case models.RadiusArea:
		if buyer.Coordinate == nil {
			return models.GeofenceResult{Allowed: false, Reason: models.ReasonNoLocation}
		}
		d := geo.DistanceKm(a.Origin, *buyer.Coordinate)
		if d <= a.RadiusKm {
			return models.GeofenceResult{Allowed: true, DistanceKm: &d}
		}
		return models.GeofenceResult{Allowed: false, Reason: models.ReasonOutOfRadius, DistanceKm: &d}

	case models.ProvinceArea:
		if buyer.Province == "" {
			return models.GeofenceResult{Allowed: false, Reason: models.ReasonNoProvince}
		}
		for _, p := range a.Provinces {
			if p == buyer.Province {
				return models.GeofenceResult{Allowed: true}
			}
		}
		return models.GeofenceResult{Allowed: false, Reason: models.ReasonProvinceBlocked}

	case models.CountryArea:
		if buyer.Country == "" {
			return models.GeofenceResult{Allowed: false, Reason: models.ReasonNoCountry}
		}
		for _, c := range a.Countries {
			if c == buyer.Country {
				return models.GeofenceResult{Allowed: true}
			}
		}
		return models.GeofenceResult{Allowed: false, Reason: models.ReasonCountryBlocked}

	case models.PolygonArea:
		if buyer.Coordinate == nil {
			return models.GeofenceResult{Allowed: false, Reason: models.ReasonNoLocation}
		}
		if geo.PointInPolygon(*buyer.Coordinate, a.Vertices) {
			return models.GeofenceResult{Allowed: true}
		}
		return models.GeofenceResult{Allowed: false, Reason: models.ReasonOutOfPolygon}

	default:
		// Unreachable with the closed variant set; kept so a nil or foreign
		// ServiceArea fails closed instead of panicking.
		return models.GeofenceResult{Allowed: false, Reason: models.ReasonUnsupportedMode}
	}
}

// CheckDeliveryPolicy wraps WithinServiceArea with the cross-border override.
// A buyer and seller in different countries (both known) always routes to the
// cross-border flow, no matter how close the buyer is: domestic reachability
// is a logistics question, cross-border is a customs one.
func CheckDeliveryPolicy(area models.ServiceArea, sellerCountry string, buyer models.BuyerLocation) models.DeliverabilityStatus {
	if buyer.Country != "" && sellerCountry != "" && buyer.Country != sellerCountry {
		return models.DeliverabilityStatus{
			GeofenceResult: models.GeofenceResult{Allowed: false, Reason: models.ReasonCrossBorder},
			CrossBorder:    true,
		}
	}
	return models.DeliverabilityStatus{
		GeofenceResult: WithinServiceArea(area, buyer),
		CrossBorder:    false,
	}
}

// ListingActionType maps a deliverability status to the commercial action the
// UI offers. Every domestic non-allowed outcome, including an unknown buyer
// location, falls through to the manual quote path.
func ListingActionType(status models.DeliverabilityStatus) models.ActionType {
	switch {
	case status.CrossBorder:
		return models.ActionRequestRFQ
	case status.Allowed:
		return models.ActionBuyNow
	default:
		return models.ActionRequestQuote
	}
}

// ResolveAction is the full ladder in one call: policy check, then action.
func ResolveAction(area models.ServiceArea, sellerCountry string, buyer models.BuyerLocation) (models.DeliverabilityStatus, models.ActionType) {
	status := CheckDeliveryPolicy(area, sellerCountry, buyer)
	return status, ListingActionType(status)
}
