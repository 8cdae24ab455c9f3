package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for GeoJSON-style consumers.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
