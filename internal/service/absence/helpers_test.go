package absence

import "math"

const earthRadiusMeters = 6371000

// offsetNorth returns the latitude reached by moving meters due north from lat.
func offsetNorth(lat, meters float64) float64 {
	return lat + meters/earthRadiusMeters*(180/math.Pi)
}
