package guidance

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

// Direction. one step of a trip: depart, transfer at an intermediate stop, or arrive.
// fare & distance belong to the leg that starts at this step (zero for the arrival).
type Direction struct {
	turnSign           int
	turnType           string
	instruction        string
	stop               string
	point              geo.Coordinate
	bearing            float64
	fare               float64
	distance           float64
	cumulativeFare     float64
	cumulativeDistance float64
}

func (d Direction) GetTurnSign() int {
	return d.turnSign
}

func (d Direction) GetTurnType() string {
	return d.turnType
}

func (d Direction) GetInstruction() string {
	return d.instruction
}

func (d Direction) GetStop() string {
	return d.stop
}

func (d Direction) GetPoint() geo.Coordinate {
	return d.point
}

// GetBearing. initial bearing in degrees of the leg starting here
func (d Direction) GetBearing() float64 {
	return d.bearing
}

func (d Direction) GetFare() float64 {
	return d.fare
}

func (d Direction) GetDistance() float64 {
	return d.distance
}

// GetCumulativeFare. fare paid before this step
func (d Direction) GetCumulativeFare() float64 {
	return d.cumulativeFare
}

func (d Direction) GetCumulativeDistance() float64 {
	return d.cumulativeDistance
}

type DirectionBuilder struct {
	directions         []Direction
	prevBearing        float64
	cumulativeFare     float64
	cumulativeDistance float64
}

func NewDirectionBuilder() *DirectionBuilder {
	return &DirectionBuilder{
		directions: make([]Direction, 0),
	}
}

// GetTransitDirections. legCoords[i] is the shape of legs[i] oriented in travel direction,
// at least the two endpoints. the result has len(legs)+1 steps. startPoint is only used when there are no legs.
func (db *DirectionBuilder) GetTransitDirections(path []string, legs []datastructure.Leg,
	legCoords [][]geo.Coordinate, startPoint geo.Coordinate) []Direction {
	db.directions = make([]Direction, 0, len(legs)+1)
	db.cumulativeFare, db.cumulativeDistance = 0, 0

	if len(legs) == 0 {
		if len(path) == 0 {
			return db.directions
		}
		db.buildFinalInstruction(path[0], startPoint)
		return db.directions
	}

	for i, leg := range legs {
		db.buildInstruction(i, leg, legCoords[i])
	}

	last := legCoords[len(legs)-1]
	db.buildFinalInstruction(legs[len(legs)-1].GetTo(), last[len(last)-1])
	return db.directions
}

func (db *DirectionBuilder) buildInstruction(i int, leg datastructure.Leg, coords []geo.Coordinate) {
	tail, next := coords[0], coords[1]
	initialBearing := computeInitialBearing(tail.GetLat(), tail.GetLon(), next.GetLat(), next.GetLon())
	bearingDegree := util.RadiansToDegree(initialBearing)

	var (
		sign        int
		instruction string
	)
	if i == 0 {
		sign = START
		instruction = fmt.Sprintf("Depart from %s heading %s toward %s", leg.GetFrom(),
			bearingToCompass(bearingDegree), leg.GetTo())
	} else {
		sign = getTurnDirection(db.prevBearing, initialBearing)
		dir, _ := getDirectionDescription(sign)
		if sign == CONTINUE_ON_STREET {
			instruction = fmt.Sprintf("At %s, transfer and continue toward %s", leg.GetFrom(), leg.GetTo())
		} else {
			instruction = fmt.Sprintf("At %s, transfer and %s toward %s", leg.GetFrom(), lowerFirst(dir), leg.GetTo())
		}
	}
	_, turnType := getDirectionDescription(sign)

	db.directions = append(db.directions, Direction{
		turnSign:           sign,
		turnType:           turnType,
		instruction:        instruction,
		stop:               leg.GetFrom(),
		point:              tail,
		bearing:            bearingDegree,
		fare:               leg.GetFare(),
		distance:           leg.GetDistance(),
		cumulativeFare:     db.cumulativeFare,
		cumulativeDistance: db.cumulativeDistance,
	})

	db.cumulativeFare += leg.GetFare()
	db.cumulativeDistance += leg.GetDistance()

	prev, head := coords[len(coords)-2], coords[len(coords)-1]
	db.prevBearing = computeFinalBearing(prev.GetLat(), prev.GetLon(), head.GetLat(), head.GetLon())
}

func (db *DirectionBuilder) buildFinalInstruction(stop string, point geo.Coordinate) {
	_, turnType := getDirectionDescription(FINISH)
	db.directions = append(db.directions, Direction{
		turnSign:           FINISH,
		turnType:           turnType,
		instruction:        fmt.Sprintf("Arrive at %s", stop),
		stop:               stop,
		point:              point,
		cumulativeFare:     db.cumulativeFare,
		cumulativeDistance: db.cumulativeDistance,
	})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
