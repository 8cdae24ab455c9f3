package geo

import (
	"math"
	"testing"

	"visit-route-service/internal/domain"
)

// Rough rectangle around a metro area.
var testPolygon = []domain.Coordinates{
	{Lat: 40.52, Lon: -3.83},
	{Lat: 40.53, Lon: -3.58},
	{Lat: 40.44, Lon: -3.52},
	{Lat: 40.33, Lon: -3.56},
	{Lat: 40.31, Lon: -3.75},
	{Lat: 40.39, Lon: -3.85},
}

func TestInsidePolygonCentroid(t *testing.T) {
	c := Centroid(testPolygon)
	if !InsidePolygon(c, testPolygon) {
		t.Fatalf("centroid (%f, %f) should be inside", c.Lat, c.Lon)
	}
}

func TestInsidePolygonFarPoint(t *testing.T) {
	// Oslo is well over 1000 km away from the test area.
	far := domain.Coordinates{Lat: 59.91, Lon: 10.75}
	if InsidePolygon(far, testPolygon) {
		t.Fatal("far point should be outside")
	}
	if d := HaversineKm(far, Centroid(testPolygon)); d < 1000 {
		t.Fatalf("expected far point >1000km out, got %fkm", d)
	}
}

func TestInsidePolygonDegenerate(t *testing.T) {
	p := domain.Coordinates{Lat: 40.4, Lon: -3.7}
	if InsidePolygon(p, nil) {
		t.Fatal("empty polygon contains nothing")
	}
	if InsidePolygon(p, testPolygon[:2]) {
		t.Fatal("two vertices contain nothing")
	}
}

func TestHaversineKm(t *testing.T) {
	// One degree of latitude is ~111.19 km on the 6371km sphere.
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 1, Lon: 0}

	got := HaversineKm(a, b)
	if math.Abs(got-111.19) > 0.1 {
		t.Fatalf("distance = %f, want ~111.19", got)
	}

	if HaversineKm(a, a) != 0 {
		t.Fatal("zero distance expected for identical points")
	}
}

func TestCheckCoverage(t *testing.T) {
	inside := CheckCoverage(domain.Coordinates{Lat: 40.42, Lon: -3.70}, testPolygon)
	if !inside.Inside {
		t.Fatal("expected point inside coverage")
	}

	outside := CheckCoverage(domain.Coordinates{Lat: 41.5, Lon: 2.1}, testPolygon)
	if outside.Inside {
		t.Fatal("expected point outside coverage")
	}
	if outside.DistanceToCenterKm <= inside.DistanceToCenterKm {
		t.Fatal("outside point should be farther from center")
	}
}

func TestWithinRadiusKm(t *testing.T) {
	center := domain.Coordinates{Lat: 40.42, Lon: -3.70}
	near := &domain.Patient{Name: "near", Coords: &domain.Coordinates{Lat: 40.43, Lon: -3.71}}
	far := &domain.Patient{Name: "far", Coords: &domain.Coordinates{Lat: 41.40, Lon: 2.17}}
	missing := &domain.Patient{Name: "missing"}

	got := WithinRadiusKm([]*domain.Patient{near, far, missing}, center, 50)
	if len(got) != 1 || got[0].Name != "near" {
		t.Fatalf("expected only the near patient, got %d", len(got))
	}
}
