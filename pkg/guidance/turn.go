package guidance

import (
	"math"

	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

const (
	TURN_SHARP_LEFT    = -3
	TURN_LEFT          = -2
	TURN_SLIGHT_LEFT   = -1
	CONTINUE_ON_STREET = 0
	TURN_SLIGHT_RIGHT  = 1
	TURN_RIGHT         = 2
	TURN_SHARP_RIGHT   = 3
	FINISH             = 4
	START              = 101
)

// https://www.movable-type.co.uk/scripts/latlong.html
// initial bearing (baering from a to b with meridian line crossing a)
func computeInitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	bearing := geo.BearingTo(lat1, lon1, lat2, lon2)
	bearing = util.DegreeToRadians(bearing)
	return bearing
}

// final bearing (baering from a to b with meridian line crossing b)
func computeFinalBearing(lat1, lon1, lat2, lon2 float64) float64 {
	bearing := geo.BearingTo(lat2, lon2, lat1, lon1)
	bearing = math.Mod(bearing+180, 360)
	bearing = util.DegreeToRadians(bearing)
	return bearing
}

/*
alignInitialBearing. handle case when initialBearing-prevBearing > 180° or initialBearing-prevBearing < -180°.

e.g. prevBearing 20°, initialBearing 350°: dif 330° reads as a right turn but it is a left one,
so prevBearing + 360°.
prevBearing 340°, initialBearing 10°: dif -330° reads as a left turn but it is a right one,
so initialBearing + 360°.
*/
func alignInitialBearing(prevBearing, initialBearing float64) (float64, float64) {
	dif := util.RadiansToDegree(initialBearing) - util.RadiansToDegree(prevBearing)
	if dif > 180 {
		prevBearing += 2 * math.Pi
	} else if dif < -180 {
		initialBearing += 2 * math.Pi
	}
	return prevBearing, initialBearing
}

// getTurnDirection. turn sign between the arriving bearing and the departing bearing, both in radians
func getTurnDirection(prevBearing, initialBearing float64) int {
	prevBearing, initialBearing = alignInitialBearing(prevBearing, initialBearing)
	delta := initialBearing - prevBearing
	deltaDegree := util.RadiansToDegree(math.Abs(delta))
	if deltaDegree < 12 {
		// 12°
		return CONTINUE_ON_STREET
	} else if deltaDegree < 40 {
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	} else if deltaDegree < 105 {
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	} else if delta < 0 {
		return TURN_SHARP_LEFT
	}
	return TURN_SHARP_RIGHT
}

func bearingToCompass(bearing float64) string {
	if bearing < 22.5 {
		return "North"
	} else if bearing < 67.5 {
		return "North East"
	} else if bearing < 112.5 {
		return "East"
	} else if bearing < 157.5 {
		return "South East"
	} else if bearing < 202.5 {
		return "South"
	} else if bearing < 247.5 {
		return "South West"
	} else if bearing < 292.5 {
		return "West"
	} else if bearing < 337.5 {
		return "North West"
	}
	return "North"
}

func getDirectionDescription(sign int) (string, string) {
	switch sign {
	case START:
		return "Depart", "START"
	case FINISH:
		return "Arrive", "FINISH"
	case CONTINUE_ON_STREET:
		return "Continue", "CONTINUE"
	case TURN_SHARP_LEFT:
		return "Turn sharp left", "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "Turn left", "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left", "TURN_SLIGHT_LEFT"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right", "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "Turn right", "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right", "TURN_SHARP_RIGHT"
	default:
		return "", ""
	}
}
