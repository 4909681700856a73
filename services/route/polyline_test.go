package route

import (
	"testing"

	"routed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePolyline(t *testing.T) {
	// Reference example from the polyline encoding docs.
	points := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")

	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, points[0].Lng, 1e-5)
	assert.InDelta(t, 40.7, points[1].Lat, 1e-5)
	assert.InDelta(t, -120.95, points[1].Lng, 1e-5)
	assert.InDelta(t, 43.252, points[2].Lat, 1e-5)
	assert.InDelta(t, -126.453, points[2].Lng, 1e-5)
}

func TestDecodePolylineEmpty(t *testing.T) {
	assert.Empty(t, DecodePolyline(""))
}

func TestHaversineMeters(t *testing.T) {
	paris := models.LatLng{Lat: 48.8566, Lng: 2.3522}
	london := models.LatLng{Lat: 51.5074, Lng: -0.1278}

	// Roughly 344 km between the two city centers.
	d := HaversineMeters(paris, london)
	assert.InDelta(t, 344000, d, 2000)

	assert.Zero(t, HaversineMeters(paris, paris))
}

func TestSampleAlongPolyline(t *testing.T) {
	// Path heading due north; one degree of latitude is ~111 km.
	path := []models.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 1, Lng: 0},
	}

	samples := SampleAlongPolyline(path, 20000)

	// First point plus a sample every 20 km along ~111 km.
	require.GreaterOrEqual(t, len(samples), 5)
	assert.Equal(t, path[0], samples[0])
	for i := 1; i < len(samples); i++ {
		gap := HaversineMeters(samples[i-1], samples[i])
		assert.InDelta(t, 20000, gap, 100)
	}
}

func TestSampleAlongPolylineShortPath(t *testing.T) {
	path := []models.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 0.001, Lng: 0},
	}

	// Spacing longer than the whole path yields just the start point.
	samples := SampleAlongPolyline(path, 5000)
	require.Len(t, samples, 1)
	assert.Equal(t, path[0], samples[0])

	assert.Nil(t, SampleAlongPolyline(nil, 1000))
}
