package datastructure

import "github.com/lintang-b-s/navigatorx-transit/pkg/geo"

// Stop. a named vertex of the transit graph. Name is the vertex key, ID is carried for callers only.
type Stop struct {
	ID   string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name string  `json:"name" yaml:"name" validate:"required"`
	Lat  float64 `json:"lat" yaml:"lat" validate:"min=-90,max=90"`
	Lon  float64 `json:"lon" yaml:"lon" validate:"min=-180,max=180"`
}

func NewStop(id, name string, lat, lon float64) Stop {
	return Stop{ID: id, Name: name, Lat: lat, Lon: lon}
}

func (s Stop) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(s.Lat, s.Lon)
}

// Waypoint. display-only via point of a route, never a graph vertex.
type Waypoint struct {
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat" validate:"min=-90,max=90"`
	Lon  float64 `json:"lon" yaml:"lon" validate:"min=-180,max=180"`
}

func NewWaypoint(name string, lat, lon float64) Waypoint {
	return Waypoint{Name: name, Lat: lat, Lon: lon}
}

// Route. edge template between two stops. Distance is optional (nil -> haversine of the endpoints).
type Route struct {
	From          string          `json:"from" yaml:"from" validate:"required"`
	To            string          `json:"to" yaml:"to" validate:"required"`
	Fare          float64         `json:"fare" yaml:"fare" validate:"min=0"`
	Distance      *float64        `json:"distance,omitempty" yaml:"distance,omitempty" validate:"omitempty,min=0"`
	FromCoords    *geo.Coordinate `json:"fromCoords,omitempty" yaml:"fromCoords,omitempty"`
	ToCoords      *geo.Coordinate `json:"toCoords,omitempty" yaml:"toCoords,omitempty"`
	Intermediates []Waypoint      `json:"intermediates,omitempty" yaml:"intermediates,omitempty" validate:"dive"`
}

func NewRoute(from, to string, fare float64) Route {
	return Route{From: from, To: to, Fare: fare}
}

func NewRouteWithDistance(from, to string, fare, distance float64) Route {
	d := distance
	return Route{From: from, To: to, Fare: fare, Distance: &d}
}

func (r Route) HasDistance() bool {
	return r.Distance != nil
}

func (w Waypoint) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(w.Lat, w.Lon)
}

func (r Route) WithIntermediates(wps ...Waypoint) Route {
	r.Intermediates = append([]Waypoint(nil), wps...)
	return r
}
