package geo

import (
	"math"
	"testing"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{
			name: "one degree of longitude on the equator",
			lat1: 0, lon1: 0, lat2: 0, lon2: 1,
			want:      111.19,
			tolerance: 0.01,
		},
		{
			name: "same point",
			lat1: -7.7956, lon1: 110.3695, lat2: -7.7956, lon2: 110.3695,
			want:      0,
			tolerance: 1e-9,
		},
		{
			name: "pole to pole",
			lat1: 90, lon1: 0, lat2: -90, lon2: 0,
			want:      math.Pi * pkg.EARTH_RADIUS_KM,
			tolerance: 1e-6,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.tolerance)
			assert.InDelta(t, got, CalculateHaversineDistance(tt.lat2, tt.lon2, tt.lat1, tt.lon1), 1e-9)
		})
	}
}

func TestGetDestinationPointRoundTrip(t *testing.T) {
	lat, lon := GetDestinationPoint(0, 0, 90, 111.19492664455873)
	assert.InDelta(t, 0, lat, 1e-9)
	assert.InDelta(t, 1, lon, 1e-6)
}

func TestPolylineLengthMatchesHaversine(t *testing.T) {
	coords := []Coordinate{NewCoordinate(0, 0), NewCoordinate(0, 1), NewCoordinate(0, 2)}
	assert.InDelta(t, 2*CalculateHaversineDistance(0, 0, 0, 1), PolylineLength(coords), 1e-6)
	assert.Zero(t, PolylineLength(coords[:1]))
}

func TestPolylineEncodeDecode(t *testing.T) {
	coords := []Coordinate{NewCoordinate(38.5, -120.2), NewCoordinate(40.7, -120.95), NewCoordinate(43.252, -126.453)}
	encoded := PolylineFromCoords(coords)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestBearingTo(t *testing.T) {
	testCases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{name: "north", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 0},
		{name: "east", lat1: 0, lon1: 0, lat2: 0, lon2: 1, want: 90},
		{name: "south", lat1: 1, lon1: 0, lat2: 0, lon2: 0, want: 180},
		{name: "west", lat1: 0, lon1: 1, lat2: 0, lon2: 0, want: 270},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BearingTo(tt.lat1, tt.lon1, tt.lat2, tt.lon2), 1e-9)
		})
	}
}
