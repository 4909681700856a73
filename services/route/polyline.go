package route

import (
	"math"

	"routed/models"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(a, b models.LatLng) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	hav := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(hav))
}

// DecodePolyline expands an encoded Google polyline into coordinates.
func DecodePolyline(encoded string) []models.LatLng {
	var points []models.LatLng
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		for axis := 0; axis < 2; axis++ {
			shift, result := 0, 0
			for {
				b := int(encoded[index]) - 63
				index++
				result |= (b & 0x1f) << shift
				shift += 5
				if b < 0x20 {
					break
				}
			}
			delta := result >> 1
			if result&1 != 0 {
				delta = ^delta
			}
			if axis == 0 {
				lat += delta
			} else {
				lng += delta
			}
		}
		points = append(points, models.LatLng{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}
	return points
}

// SampleAlongPolyline returns points spaced approximately everyM meters
// along the path, starting with the first point.
func SampleAlongPolyline(points []models.LatLng, everyM float64) []models.LatLng {
	if len(points) == 0 {
		return nil
	}
	samples := []models.LatLng{points[0]}
	accumulated := 0.0
	prev := points[0]

	for _, p := range points[1:] {
		segLen := HaversineMeters(prev, p)
		if segLen == 0 {
			prev = p
			continue
		}
		for accumulated+segLen >= everyM {
			remain := everyM - accumulated
			frac := remain / segLen
			sample := models.LatLng{
				Lat: prev.Lat + (p.Lat-prev.Lat)*frac,
				Lng: prev.Lng + (p.Lng-prev.Lng)*frac,
			}
			samples = append(samples, sample)
			prev = sample
			segLen = HaversineMeters(prev, p)
			accumulated = 0
		}
		accumulated += segLen
		prev = p
	}
	return samples
}
