package datastructure

import "github.com/lintang-b-s/navigatorx-transit/pkg"

// Cost. label of a partial path. every dimension only grows along an edge traversal.
type Cost struct {
	fare     float64
	legs     int
	distance float64
}

func NewCost(fare float64, legs int, distance float64) Cost {
	return Cost{fare: fare, legs: legs, distance: distance}
}

func ZeroCost() Cost {
	return Cost{}
}

func InfCost() Cost {
	return Cost{fare: pkg.INF_WEIGHT, legs: pkg.INF_WEIGHT_INT, distance: pkg.INF_WEIGHT}
}

func (c Cost) GetFare() float64 {
	return c.fare
}

func (c Cost) GetLegs() int {
	return c.legs
}

func (c Cost) GetDistance() float64 {
	return c.distance
}

// Extend. cost after traversing one more edge
func (c Cost) Extend(e Edge) Cost {
	return Cost{
		fare:     c.fare + e.fare,
		legs:     c.legs + 1,
		distance: c.distance + e.distance,
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareCost. lexicographic comparison of a and b under priority p: -1 if a is better, 1 if b is better, 0 if equal.
// keys are compared for strict difference before falling through to the next key.
func CompareCost(a, b Cost, p pkg.Priority) int {
	var keys [3]func() int
	fare := func() int { return cmpFloat(a.fare, b.fare) }
	legs := func() int { return cmpInt(a.legs, b.legs) }
	dist := func() int { return cmpFloat(a.distance, b.distance) }

	switch p {
	case pkg.PRIORITY_DISTANCE:
		keys = [3]func() int{dist, fare, legs}
	case pkg.PRIORITY_STOPS:
		keys = [3]func() int{legs, fare, dist}
	default:
		keys = [3]func() int{fare, legs, dist}
	}

	for _, key := range keys {
		if c := key(); c != 0 {
			return c
		}
	}
	return 0
}

// Better. true if c is strictly better than o under p
func (c Cost) Better(o Cost, p pkg.Priority) bool {
	return CompareCost(c, o, p) < 0
}
