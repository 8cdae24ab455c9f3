package geo

import (
	"math"

	"visit-route-service/internal/domain"
)

// Mean earth radius in kilometers (spherical approximation).
const earthRadiusKm = 6371.0

// CoverageResult is the outcome of a serviceability check for one point.
type CoverageResult struct {
	Inside             bool
	DistanceToCenterKm float64
}

// InsidePolygon reports whether p lies inside the closed polygon given
// by its ordered vertex list, using the standard ray-casting test. The
// last vertex implicitly connects back to the first. Behavior for points
// exactly on an edge is unspecified.
func InsidePolygon(p domain.Coordinates, polygon []domain.Coordinates) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := polygon[i], polygon[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lon < (vj.Lon-vi.Lon)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lon {
			inside = !inside
		}
		j = i
	}
	return inside
}

// HaversineKm computes the great-circle distance between two points in
// kilometers over a spherical earth.
func HaversineKm(a, b domain.Coordinates) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Centroid returns the arithmetic mean of the polygon vertices. Good
// enough as a reference center for distance reporting; not an area
// centroid.
func Centroid(polygon []domain.Coordinates) domain.Coordinates {
	if len(polygon) == 0 {
		return domain.Coordinates{}
	}
	var lat, lon float64
	for _, v := range polygon {
		lat += v.Lat
		lon += v.Lon
	}
	n := float64(len(polygon))
	return domain.Coordinates{Lat: lat / n, Lon: lon / n}
}

// CheckCoverage combines containment and distance-to-center for the
// interactive intake check.
func CheckCoverage(p domain.Coordinates, polygon []domain.Coordinates) CoverageResult {
	return CoverageResult{
		Inside:             InsidePolygon(p, polygon),
		DistanceToCenterKm: HaversineKm(p, Centroid(polygon)),
	}
}

// WithinRadiusKm filters patients to those whose residence lies within
// radius kilometers of center. Patients without coordinates are skipped.
func WithinRadiusKm(patients []*domain.Patient, center domain.Coordinates, radiusKm float64) []*domain.Patient {
	out := make([]*domain.Patient, 0, len(patients))
	for _, p := range patients {
		if p == nil || p.Coords == nil {
			continue
		}
		if HaversineKm(*p.Coords, center) <= radiusKm {
			out = append(out, p)
		}
	}
	return out
}
