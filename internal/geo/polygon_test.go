package geo

import (
	"testing"

	"kraal-bknd/internal/models"
)

// gautengBox is a rough box around Gauteng, open (no repeated first vertex);
// PointInPolygon closes it implicitly.
var gautengBox = []models.Coordinate{
	{Lat: -25.5, Lng: 27.5},
	{Lat: -25.5, Lng: 29.0},
	{Lat: -26.8, Lng: 29.0},
	{Lat: -26.8, Lng: 27.5},
}

func TestPointInPolygon(t *testing.T) {
	tests := []struct {
		name    string
		pt      models.Coordinate
		polygon []models.Coordinate
		want    bool
	}{
		{
			name:    "johannesburg inside gauteng box",
			pt:      models.Coordinate{Lat: -26.2041, Lng: 28.0473},
			polygon: gautengBox,
			want:    true,
		},
		{
			name:    "cape town outside gauteng box",
			pt:      models.Coordinate{Lat: -33.9249, Lng: 18.4241},
			polygon: gautengBox,
			want:    false,
		},
		{
			name:    "just outside northern edge",
			pt:      models.Coordinate{Lat: -25.4, Lng: 28.0},
			polygon: gautengBox,
			want:    false,
		},
		{
			name:    "empty polygon contains nothing",
			pt:      models.Coordinate{Lat: -26.2, Lng: 28.0},
			polygon: nil,
			want:    false,
		},
		{
			name:    "single vertex contains nothing",
			pt:      models.Coordinate{Lat: -26.2, Lng: 28.0},
			polygon: gautengBox[:1],
			want:    false,
		},
		{
			name:    "two vertices contain nothing",
			pt:      models.Coordinate{Lat: -26.2, Lng: 28.0},
			polygon: gautengBox[:2],
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.pt, tt.polygon); got != tt.want {
				t.Errorf("PointInPolygon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointInPolygonImplicitClosure(t *testing.T) {
	// A polygon is closed without repeating its first vertex.
	triangle := []models.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: 5},
	}
	if !PointInPolygon(models.Coordinate{Lat: 4, Lng: 5}, triangle) {
		t.Error("point inside open triangle reported outside")
	}
}
