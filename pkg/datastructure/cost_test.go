package datastructure

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/stretchr/testify/assert"
)

func TestCompareCost(t *testing.T) {
	cheapLong := NewCost(2, 3, 10)
	pricyShort := NewCost(5, 1, 4)

	testCases := []struct {
		name     string
		a, b     Cost
		priority pkg.Priority
		want     int
	}{
		{name: "fare first", a: cheapLong, b: pricyShort, priority: pkg.PRIORITY_FARE, want: -1},
		{name: "stops first", a: cheapLong, b: pricyShort, priority: pkg.PRIORITY_STOPS, want: 1},
		{name: "distance first", a: cheapLong, b: pricyShort, priority: pkg.PRIORITY_DISTANCE, want: 1},
		{name: "fare tie falls to legs", a: NewCost(2, 1, 50), b: NewCost(2, 2, 1), priority: pkg.PRIORITY_FARE, want: -1},
		{name: "distance tie falls to fare", a: NewCost(3, 1, 5), b: NewCost(2, 4, 5), priority: pkg.PRIORITY_DISTANCE, want: 1},
		{name: "stops tie falls to fare then distance", a: NewCost(2, 2, 5), b: NewCost(2, 2, 6), priority: pkg.PRIORITY_STOPS, want: -1},
		{name: "equal tuples", a: NewCost(1, 1, 1), b: NewCost(1, 1, 1), priority: pkg.PRIORITY_FARE, want: 0},
		{name: "unknown priority uses fare order", a: cheapLong, b: pricyShort, priority: pkg.Priority(42), want: -1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareCost(tt.a, tt.b, tt.priority))
			assert.Equal(t, -tt.want, CompareCost(tt.b, tt.a, tt.priority))
		})
	}
}

func TestCostExtend(t *testing.T) {
	c := ZeroCost().Extend(NewEdge("B", 1.5, 2.5, 0, false)).Extend(NewEdge("C", 1, 1, 1, false))
	assert.Equal(t, 2.5, c.GetFare())
	assert.Equal(t, 2, c.GetLegs())
	assert.Equal(t, 3.5, c.GetDistance())
	assert.True(t, c.Better(InfCost(), pkg.PRIORITY_STOPS))

	huge := NewCost(2e15, 1, 2e15)
	for _, p := range []pkg.Priority{pkg.PRIORITY_FARE, pkg.PRIORITY_DISTANCE, pkg.PRIORITY_STOPS} {
		assert.True(t, huge.Better(InfCost(), p), p.String())
	}
}
