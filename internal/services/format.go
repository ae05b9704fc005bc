package services

import (
	"fmt"

	"kraal-bknd/internal/geo"
	"kraal-bknd/internal/models"
)

// FormatStatus maps a deliverability status to the short banner the UI
// renders: text, a traffic-light color, and an icon glyph. Pure formatting,
// no business rules.
func FormatStatus(status models.DeliverabilityStatus) models.StatusDisplay {
	switch {
	case status.Allowed:
		return models.StatusDisplay{Text: "Delivers to you", Color: "green", Icon: "✓"}
	case status.CrossBorder:
		return models.StatusDisplay{Text: "Cross-border quote required", Color: "amber", Icon: "✈"}
	case status.Reason == models.ReasonNoLocation,
		status.Reason == models.ReasonNoProvince,
		status.Reason == models.ReasonNoCountry:
		return models.StatusDisplay{Text: "Set your location to check delivery", Color: "amber", Icon: "?"}
	default:
		return models.StatusDisplay{Text: "Outside delivery area", Color: "red", Icon: "✕"}
	}
}

// ReasonText maps a reason code to a human sentence. Unknown codes echo the
// code so nothing fails on a wire value from a newer server.
func ReasonText(reason models.Reason) string {
	switch reason {
	case models.ReasonNone:
		return "This listing delivers to your location."
	case models.ReasonNoLocation:
		return "We don't know your location yet. Set it to check delivery."
	case models.ReasonNoProvince:
		return "Select your province to check delivery for this listing."
	case models.ReasonNoCountry:
		return "Select your country to check delivery for this listing."
	case models.ReasonOutOfRadius:
		return "You are outside this seller's delivery radius."
	case models.ReasonProvinceBlocked:
		return "This seller does not deliver to your province."
	case models.ReasonCountryBlocked:
		return "This seller does not deliver to your country."
	case models.ReasonOutOfPolygon:
		return "You are outside this seller's delivery area."
	case models.ReasonCrossBorder:
		return "This is a cross-border order and needs an import/export quote."
	case models.ReasonUnsupportedMode:
		return "This listing's delivery area could not be understood."
	default:
		return string(reason)
	}
}

// StatusMessage builds the full human sentence for a status, including the
// distance and province name detail the coverage preview shows.
func StatusMessage(status models.DeliverabilityStatus, buyer models.BuyerLocation) string {
	msg := ReasonText(status.Reason)
	if status.DistanceKm != nil {
		msg = fmt.Sprintf("%s (%.0f km away)", msg, *status.DistanceKm)
	}
	if status.Reason == models.ReasonProvinceBlocked && buyer.Province != "" {
		msg = fmt.Sprintf("%s (%s)", msg, geo.ProvinceName(buyer.Province))
	}
	if status.Reason == models.ReasonCountryBlocked && buyer.Country != "" {
		msg = fmt.Sprintf("%s (%s)", msg, geo.CountryName(buyer.Country))
	}
	return msg
}
