package services

import (
	"math"
	"reflect"
	"testing"

	"kraal-bknd/internal/geo"
	"kraal-bknd/internal/models"
)

var (
	johannesburg = models.Coordinate{Lat: -26.2041, Lng: 28.0473}
	pretoria     = models.Coordinate{Lat: -25.7479, Lng: 28.2293}
	capeTown     = models.Coordinate{Lat: -33.9249, Lng: 18.4241}
)

func coord(c models.Coordinate) *models.Coordinate { return &c }

func TestWithinServiceAreaRadius(t *testing.T) {
	area := models.RadiusArea{Origin: johannesburg, RadiusKm: 100}

	t.Run("buyer inside radius", func(t *testing.T) {
		got := WithinServiceArea(area, models.BuyerLocation{Coordinate: coord(pretoria)})
		if !got.Allowed {
			t.Fatalf("Allowed = false, want true (reason %s)", got.Reason)
		}
		if got.DistanceKm == nil {
			t.Fatal("DistanceKm not populated on radius path")
		}
		if math.Abs(*got.DistanceKm-53.9) > 0.5 {
			t.Errorf("DistanceKm = %v, want ≈53.9", *got.DistanceKm)
		}
	})

	t.Run("buyer outside radius keeps distance", func(t *testing.T) {
		got := WithinServiceArea(area, models.BuyerLocation{Coordinate: coord(capeTown)})
		if got.Allowed {
			t.Fatal("Allowed = true, want false")
		}
		if got.Reason != models.ReasonOutOfRadius {
			t.Errorf("Reason = %s, want OUT_OF_RADIUS", got.Reason)
		}
		if got.DistanceKm == nil {
			t.Fatal("DistanceKm not populated on failed radius path")
		}
	})

	t.Run("no coordinate", func(t *testing.T) {
		got := WithinServiceArea(area, models.BuyerLocation{Province: "GP", Country: "ZA"})
		if got.Allowed || got.Reason != models.ReasonNoLocation {
			t.Errorf("got %+v, want blocked with NO_LOCATION", got)
		}
		if got.DistanceKm != nil {
			t.Error("DistanceKm set without a buyer coordinate")
		}
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		d := geo.DistanceKm(johannesburg, pretoria)

		exact := models.RadiusArea{Origin: johannesburg, RadiusKm: d}
		if got := WithinServiceArea(exact, models.BuyerLocation{Coordinate: coord(pretoria)}); !got.Allowed {
			t.Error("buyer exactly on the radius boundary should be allowed")
		}

		short := models.RadiusArea{Origin: johannesburg, RadiusKm: d - 0.001}
		if got := WithinServiceArea(short, models.BuyerLocation{Coordinate: coord(pretoria)}); got.Allowed {
			t.Error("buyer just past the radius should be blocked")
		}
	})
}

func TestWithinServiceAreaProvinces(t *testing.T) {
	area := models.ProvinceArea{Provinces: []string{"GP", "WC"}}

	tests := []struct {
		name       string
		buyer      models.BuyerLocation
		wantAllow  bool
		wantReason models.Reason
	}{
		{"member province", models.BuyerLocation{Province: "GP"}, true, models.ReasonNone},
		{"non-member province", models.BuyerLocation{Province: "KZN"}, false, models.ReasonProvinceBlocked},
		{"no province", models.BuyerLocation{Country: "ZA"}, false, models.ReasonNoProvince},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinServiceArea(area, tt.buyer)
			if got.Allowed != tt.wantAllow || got.Reason != tt.wantReason {
				t.Errorf("got %+v, want allowed=%v reason=%s", got, tt.wantAllow, tt.wantReason)
			}
		})
	}
}

func TestWithinServiceAreaCountries(t *testing.T) {
	area := models.CountryArea{Countries: []string{"ZA", "NA"}}

	tests := []struct {
		name       string
		buyer      models.BuyerLocation
		wantAllow  bool
		wantReason models.Reason
	}{
		{"member country", models.BuyerLocation{Country: "NA"}, true, models.ReasonNone},
		{"non-member country", models.BuyerLocation{Country: "ZW"}, false, models.ReasonCountryBlocked},
		{"no country", models.BuyerLocation{Province: "GP"}, false, models.ReasonNoCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinServiceArea(area, tt.buyer)
			if got.Allowed != tt.wantAllow || got.Reason != tt.wantReason {
				t.Errorf("got %+v, want allowed=%v reason=%s", got, tt.wantAllow, tt.wantReason)
			}
		})
	}
}

func TestWithinServiceAreaPolygon(t *testing.T) {
	box := models.PolygonArea{Vertices: []models.Coordinate{
		{Lat: -25.5, Lng: 27.5},
		{Lat: -25.5, Lng: 29.0},
		{Lat: -26.8, Lng: 29.0},
		{Lat: -26.8, Lng: 27.5},
	}}

	t.Run("inside polygon", func(t *testing.T) {
		got := WithinServiceArea(box, models.BuyerLocation{Coordinate: coord(johannesburg)})
		if !got.Allowed {
			t.Errorf("got %+v, want allowed", got)
		}
	})

	t.Run("outside polygon", func(t *testing.T) {
		got := WithinServiceArea(box, models.BuyerLocation{Coordinate: coord(capeTown)})
		if got.Allowed || got.Reason != models.ReasonOutOfPolygon {
			t.Errorf("got %+v, want blocked with OUT_OF_POLYGON", got)
		}
	})

	t.Run("no coordinate", func(t *testing.T) {
		got := WithinServiceArea(box, models.BuyerLocation{Province: "GP"})
		if got.Allowed || got.Reason != models.ReasonNoLocation {
			t.Errorf("got %+v, want blocked with NO_LOCATION", got)
		}
	})

	t.Run("degenerate polygons contain nothing", func(t *testing.T) {
		for n := 0; n <= 2; n++ {
			degenerate := models.PolygonArea{Vertices: box.Vertices[:n]}
			got := WithinServiceArea(degenerate, models.BuyerLocation{Coordinate: coord(johannesburg)})
			if got.Allowed || got.Reason != models.ReasonOutOfPolygon {
				t.Errorf("%d vertices: got %+v, want blocked with OUT_OF_POLYGON", n, got)
			}
		}
	})
}

func TestWithinServiceAreaUnsupportedMode(t *testing.T) {
	got := WithinServiceArea(nil, models.BuyerLocation{Coordinate: coord(johannesburg)})
	if got.Allowed || got.Reason != models.ReasonUnsupportedMode {
		t.Errorf("got %+v, want blocked with UNSUPPORTED_MODE", got)
	}
}

func TestWithinServiceAreaDeterministic(t *testing.T) {
	area := models.RadiusArea{Origin: johannesburg, RadiusKm: 100}
	buyer := models.BuyerLocation{Coordinate: coord(pretoria), Province: "GP", Country: "ZA"}

	first := WithinServiceArea(area, buyer)
	for i := 0; i < 5; i++ {
		if got := WithinServiceArea(area, buyer); !reflect.DeepEqual(got, first) {
			t.Fatalf("call %d returned %+v, first call returned %+v", i, got, first)
		}
	}
}

func TestCheckDeliveryPolicy(t *testing.T) {
	inside := models.RadiusArea{Origin: johannesburg, RadiusKm: 100}

	t.Run("cross-border overrides a geometric hit", func(t *testing.T) {
		buyer := models.BuyerLocation{Coordinate: coord(pretoria), Country: "BW"}
		got := CheckDeliveryPolicy(inside, "ZA", buyer)
		if !got.CrossBorder {
			t.Fatal("CrossBorder = false, want true")
		}
		if got.Allowed {
			t.Error("cross-border status must never be allowed")
		}
		if got.Reason != models.ReasonCrossBorder {
			t.Errorf("Reason = %s, want CROSS_BORDER", got.Reason)
		}
		if got.DistanceKm != nil {
			t.Error("cross-border short-circuit must not compute a distance")
		}
	})

	t.Run("same country delegates to the resolver", func(t *testing.T) {
		buyer := models.BuyerLocation{Coordinate: coord(pretoria), Country: "ZA"}
		got := CheckDeliveryPolicy(inside, "ZA", buyer)
		if got.CrossBorder || !got.Allowed {
			t.Errorf("got %+v, want domestic allowed", got)
		}
	})

	t.Run("missing buyer country is not cross-border", func(t *testing.T) {
		buyer := models.BuyerLocation{Coordinate: coord(pretoria)}
		got := CheckDeliveryPolicy(inside, "ZA", buyer)
		if got.CrossBorder {
			t.Error("unknown buyer country treated as cross-border")
		}
	})

	t.Run("missing seller country is not cross-border", func(t *testing.T) {
		buyer := models.BuyerLocation{Coordinate: coord(pretoria), Country: "BW"}
		got := CheckDeliveryPolicy(inside, "", buyer)
		if got.CrossBorder {
			t.Error("unknown seller country treated as cross-border")
		}
	})
}

func TestListingActionType(t *testing.T) {
	area := models.RadiusArea{Origin: johannesburg, RadiusKm: 100}

	tests := []struct {
		name          string
		sellerCountry string
		buyer         models.BuyerLocation
		want          models.ActionType
	}{
		{
			name:          "radius hit buys now",
			sellerCountry: "ZA",
			buyer:         models.BuyerLocation{Coordinate: coord(pretoria), Country: "ZA"},
			want:          models.ActionBuyNow,
		},
		{
			name:          "out of range requests a quote",
			sellerCountry: "ZA",
			buyer:         models.BuyerLocation{Coordinate: coord(capeTown), Country: "ZA"},
			want:          models.ActionRequestQuote,
		},
		{
			name:          "unknown location also requests a quote",
			sellerCountry: "ZA",
			buyer:         models.BuyerLocation{Country: "ZA"},
			want:          models.ActionRequestQuote,
		},
		{
			name:          "cross-border goes to rfq even when geometrically inside",
			sellerCountry: "ZA",
			buyer:         models.BuyerLocation{Coordinate: coord(pretoria), Country: "BW"},
			want:          models.ActionRequestRFQ,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := ResolveAction(area, tt.sellerCountry, tt.buyer)
			if got != tt.want {
				t.Errorf("action = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProvinceMissActionScenario(t *testing.T) {
	area := models.ProvinceArea{Provinces: []string{"GP", "WC"}}
	buyer := models.BuyerLocation{Province: "KZN", Country: "ZA"}

	status, action := ResolveAction(area, "ZA", buyer)
	if status.Allowed || status.Reason != models.ReasonProvinceBlocked {
		t.Errorf("status = %+v, want blocked with PROVINCE_BLOCKED", status)
	}
	if action != models.ActionRequestQuote {
		t.Errorf("action = %s, want REQUEST_QUOTE", action)
	}
}
