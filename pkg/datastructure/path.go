package datastructure

// Leg. one traversed edge of a result path
type Leg struct {
	from     string
	to       string
	fare     float64
	distance float64

	routeId Index
	reverse bool
}

func NewLeg(from string, e Edge) Leg {
	return Leg{
		from:     from,
		to:       e.to,
		fare:     e.fare,
		distance: e.distance,
		routeId:  e.routeId,
		reverse:  e.reverse,
	}
}

func (l Leg) GetFrom() string {
	return l.from
}

func (l Leg) GetTo() string {
	return l.to
}

func (l Leg) GetFare() float64 {
	return l.fare
}

func (l Leg) GetDistance() float64 {
	return l.distance
}

func (l Leg) GetRouteId() Index {
	return l.routeId
}

func (l Leg) IsReverse() bool {
	return l.reverse
}

type PathResult struct {
	path          []string
	legs          []Leg
	totalFare     float64
	totalDistance float64
	totalStops    int
}

// NewPathResult. aggregates are summed from the legs in path order.
func NewPathResult(path []string, legs []Leg) *PathResult {
	pr := &PathResult{
		path: path,
		legs: legs,
	}
	for _, l := range legs {
		pr.totalFare += l.fare
		pr.totalDistance += l.distance
	}
	pr.totalStops = len(legs)
	return pr
}

func NewSingleStopPathResult(stop string) *PathResult {
	return &PathResult{
		path: []string{stop},
		legs: []Leg{},
	}
}

func (pr *PathResult) GetPath() []string {
	return append([]string(nil), pr.path...)
}

func (pr *PathResult) GetLegs() []Leg {
	return append([]Leg(nil), pr.legs...)
}

func (pr *PathResult) GetTotalFare() float64 {
	return pr.totalFare
}

func (pr *PathResult) GetTotalDistance() float64 {
	return pr.totalDistance
}

func (pr *PathResult) GetTotalStops() int {
	return pr.totalStops
}
