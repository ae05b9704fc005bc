package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCoordinates marks a caller-supplied coordinate outside valid
// degree ranges. Checked at the request boundary only; the geo primitives
// accept whatever they are given.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// ValidateCoordinates checks degree ranges for request input.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidCoordinates)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidCoordinates)
	}
	return nil
}

// Coordinate is a (latitude, longitude) pair in decimal degrees.
// Values are taken as supplied; the geo primitives do not range-check them.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AreaMode tags the active ServiceArea variant.
type AreaMode string

const (
	ModeRadius    AreaMode = "radius"
	ModeProvinces AreaMode = "provinces"
	ModeCountries AreaMode = "countries"
	ModePolygon   AreaMode = "polygon"
)

// ServiceArea is a seller's declaration of where they deliver. Exactly one
// variant is active per listing; the concrete type carries that variant's
// payload, so a RadiusArea can never also claim a province set.
type ServiceArea interface {
	Mode() AreaMode
}

// RadiusArea: deliverable within RadiusKm great-circle km of Origin.
type RadiusArea struct {
	Origin   Coordinate `json:"origin"`
	RadiusKm float64    `json:"radius_km"`
}

func (RadiusArea) Mode() AreaMode { return ModeRadius }

// ProvinceArea: deliverable to an exact set of province codes.
type ProvinceArea struct {
	Provinces []string `json:"provinces"`
}

func (ProvinceArea) Mode() AreaMode { return ModeProvinces }

// CountryArea: deliverable to an exact set of country codes.
type CountryArea struct {
	Countries []string `json:"countries"`
}

func (CountryArea) Mode() AreaMode { return ModeCountries }

// PolygonArea: deliverable inside the polygon described by Vertices, treated
// as implicitly closed. Fewer than 3 vertices contains nothing.
type PolygonArea struct {
	Vertices []Coordinate `json:"polygon"`
}

func (PolygonArea) Mode() AreaMode { return ModePolygon }

// serviceAreaEnvelope is the wire/storage shape for a ServiceArea. Only the
// fields of the tagged mode are meaningful.
type serviceAreaEnvelope struct {
	Mode      AreaMode     `json:"mode"`
	Origin    *Coordinate  `json:"origin,omitempty"`
	RadiusKm  float64      `json:"radius_km,omitempty"`
	Provinces []string     `json:"provinces,omitempty"`
	Countries []string     `json:"countries,omitempty"`
	Polygon   []Coordinate `json:"polygon,omitempty"`
}

// MarshalServiceArea encodes a ServiceArea into its tagged JSON envelope.
func MarshalServiceArea(area ServiceArea) ([]byte, error) {
	env := serviceAreaEnvelope{Mode: area.Mode()}
	switch a := area.(type) {
	case RadiusArea:
		origin := a.Origin
		env.Origin = &origin
		env.RadiusKm = a.RadiusKm
	case ProvinceArea:
		env.Provinces = a.Provinces
	case CountryArea:
		env.Countries = a.Countries
	case PolygonArea:
		env.Polygon = a.Vertices
	default:
		return nil, fmt.Errorf("unknown service area mode %q", area.Mode())
	}
	return json.Marshal(env)
}

// UnmarshalServiceArea decodes the tagged JSON envelope back into the
// concrete variant. Unknown modes are an error at the boundary; the resolver
// itself never sees them.
func UnmarshalServiceArea(data []byte) (ServiceArea, error) {
	var env serviceAreaEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode service area: %w", err)
	}
	switch env.Mode {
	case ModeRadius:
		if env.Origin == nil {
			return nil, fmt.Errorf("radius service area missing origin")
		}
		return RadiusArea{Origin: *env.Origin, RadiusKm: env.RadiusKm}, nil
	case ModeProvinces:
		return ProvinceArea{Provinces: env.Provinces}, nil
	case ModeCountries:
		return CountryArea{Countries: env.Countries}, nil
	case ModePolygon:
		return PolygonArea{Vertices: env.Polygon}, nil
	default:
		return nil, fmt.Errorf("unknown service area mode %q", env.Mode)
	}
}

// Reason is the closed set of geofence outcomes. These are normal results of
// evaluating a policy against incomplete or non-matching data, not errors.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNoLocation      Reason = "NO_LOCATION"
	ReasonNoProvince      Reason = "NO_PROVINCE"
	ReasonNoCountry       Reason = "NO_COUNTRY"
	ReasonOutOfRadius     Reason = "OUT_OF_RADIUS"
	ReasonProvinceBlocked Reason = "PROVINCE_BLOCKED"
	ReasonCountryBlocked  Reason = "COUNTRY_BLOCKED"
	ReasonOutOfPolygon    Reason = "OUT_OF_POLYGON"
	ReasonCrossBorder     Reason = "CROSS_BORDER"
	ReasonUnsupportedMode Reason = "UNSUPPORTED_MODE"
)

// GeofenceResult is the resolver output. DistanceKm is populated only on the
// radius path, where it is always set, allowed or not.
type GeofenceResult struct {
	Allowed    bool     `json:"allowed"`
	Reason     Reason   `json:"reason,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// DeliverabilityStatus is a GeofenceResult tagged with the cross-border
// override. CrossBorder true implies Allowed false and Reason CROSS_BORDER.
type DeliverabilityStatus struct {
	GeofenceResult
	CrossBorder bool `json:"cross_border"`
}

// ActionType is the commercial flow the UI should offer for a listing.
type ActionType string

const (
	ActionBuyNow       ActionType = "BUY_NOW"
	ActionRequestQuote ActionType = "REQUEST_QUOTE"
	ActionRequestRFQ   ActionType = "REQUEST_RFQ"
	// ActionBlocked is reserved for a future hard-block rule; the current
	// decision ladder never produces it.
	ActionBlocked ActionType = "BLOCKED"
)

// BuyerLocation is the best-known location snapshot for one buyer session.
// Every field except Country may be absent; Country falls back to the
// platform default when the buyer has supplied nothing.
type BuyerLocation struct {
	Coordinate  *Coordinate `json:"coordinate,omitempty"`
	Province    string      `json:"province,omitempty"`
	Country     string      `json:"country,omitempty"`
	AccuracyM   *float64    `json:"accuracy_m,omitempty"`
	LastUpdated *time.Time  `json:"last_updated,omitempty"`
}
