// Package geo holds the distance helpers shared by the route splicer and the
// bypass resolver.
package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two lat/lng points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dlng/2)*math.Sin(dlng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// PlanarDist2 is the squared flat lat/lng distance. Not geodesic: it misranks
// near the antimeridian and poles, which is acceptable for a regional
// candidate pool where only relative ordering matters.
func PlanarDist2(lat1, lng1, lat2, lng2 float64) float64 {
	dlat := lat1 - lat2
	dlng := lng1 - lng2
	return dlat*dlat + dlng*dlng
}
