package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"antar/pkg/geo"
)

func TestDistanceKm_Symmetry(t *testing.T) {
	jakarta := &geo.Point{Latitude: -6.2088, Longitude: 106.8456}
	bandung := &geo.Point{Latitude: -6.9175, Longitude: 107.6191}

	ab := geo.DistanceKm(jakarta, bandung)
	ba := geo.DistanceKm(bandung, jakarta)

	assert.InDelta(t, ab, ba, 1e-9)
	assert.Greater(t, ab, 0.0)
}

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	p := &geo.Point{Latitude: -6.2088, Longitude: 106.8456}
	assert.Equal(t, 0.0, geo.DistanceKm(p, p))
}

func TestDistanceKm_MissingCoordinatesReturnZero(t *testing.T) {
	p := &geo.Point{Latitude: -6.2088, Longitude: 106.8456}

	assert.Equal(t, 0.0, geo.DistanceKm(nil, p))
	assert.Equal(t, 0.0, geo.DistanceKm(p, nil))
	assert.Equal(t, 0.0, geo.DistanceKm(nil, nil))
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Jakarta to Bandung is roughly 117 km great-circle.
	jakarta := &geo.Point{Latitude: -6.2088, Longitude: 106.8456}
	bandung := &geo.Point{Latitude: -6.9175, Longitude: 107.6191}

	assert.InDelta(t, 117, geo.DistanceKm(jakarta, bandung), 3)
}

func TestDistanceKm_OneDegreeOfLatitude(t *testing.T) {
	a := &geo.Point{Latitude: 0, Longitude: 0}
	b := &geo.Point{Latitude: 1, Longitude: 0}

	// One degree of latitude is ~111.19 km.
	assert.InDelta(t, 111.19, geo.DistanceKm(a, b), 0.1)
}
