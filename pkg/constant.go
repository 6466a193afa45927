package pkg

import (
	"errors"
	"fmt"
	"math"
)

// enum of search priority
type Priority uint8

const (
	PRIORITY_FARE Priority = iota
	PRIORITY_DISTANCE
	PRIORITY_STOPS
)

var (
	INF_WEIGHT     = math.Inf(1)
	INF_WEIGHT_INT = math.MaxInt
)

const EARTH_RADIUS_KM = 6371.0

var ErrInvalidPriority = errors.New("priority must be one of fare, distance, stops")

func (p Priority) String() string {
	switch p {
	case PRIORITY_DISTANCE:
		return "distance"
	case PRIORITY_STOPS:
		return "stops"
	default:
		return "fare"
	}
}

// ParsePriority. empty string defaults to fare, unknown literals are rejected.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "", "fare":
		return PRIORITY_FARE, nil
	case "distance":
		return PRIORITY_DISTANCE, nil
	case "stops":
		return PRIORITY_STOPS, nil
	default:
		return PRIORITY_FARE, fmt.Errorf("%w: got %q", ErrInvalidPriority, s)
	}
}
