package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/navigatorx-transit/pkg"
)

func toS2LatLngs(coords []Coordinate) []s2.LatLng {
	lls := make([]s2.LatLng, len(coords))
	for i, c := range coords {
		lls[i] = s2.LatLngFromDegrees(c.Lat, c.Lon)
	}
	return lls
}

// PolylineLength. great-circle length of the polyline through coords, in km
func PolylineLength(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	pl := s2.PolylineFromLatLngs(toS2LatLngs(coords))
	return pl.Length().Radians() * pkg.EARTH_RADIUS_KM
}
