package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceKm returns the great-circle distance between two points in kilometers.
//
// A nil point means the coordinate is unknown. In that case the function
// returns 0 ("assume nearby") instead of an error; callers that need to
// distinguish "unknown" from "co-located" must check for nil themselves
// before calling.
func DistanceKm(a, b *Point) float64 {
	if a == nil || b == nil {
		return 0
	}
	return HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// HaversineKm computes the haversine distance between two coordinate pairs.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
