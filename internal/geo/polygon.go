package geo

import "kraal-bknd/internal/models"

// PointInPolygon reports whether pt lies inside the polygon described by the
// ordered vertex list, using the ray-casting even-odd rule. The polygon is
// treated as implicitly closed (last vertex connects back to the first).
// Fewer than 3 vertices contains nothing. A point exactly on an edge is
// boundary-sensitive, the usual ray-casting ambiguity.
func PointInPolygon(pt models.Coordinate, polygon []models.Coordinate) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	x := pt.Lng
	y := pt.Lat
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := polygon[i].Lng, polygon[i].Lat
		xj, yj := polygon[j].Lng, polygon[j].Lat
		intersect := ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi)+xi)
		if intersect {
			inside = !inside
		}
	}
	return inside
}
