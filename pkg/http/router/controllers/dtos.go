package controllers

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/http/usecases"
)

type bestPathRequest struct {
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=fare distance stops"`
}

func (r bestPathRequest) toQuery() usecases.BestPathQuery {
	return usecases.BestPathQuery{From: r.From, To: r.To, Priority: r.Priority}
}

type bestPathByCoordsRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	Priority       string  `json:"priority" validate:"omitempty,oneof=fare distance stops"`
}

type nearestStopRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type batchBestPathsRequest struct {
	Queries []bestPathRequest `json:"queries" validate:"required,min=1,max=100,dive"`
}

type legResponse struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	Fare           float64 `json:"fare"`
	Distance       float64 `json:"distance"`
	Polyline       string  `json:"polyline"`
	GeometryLength float64 `json:"geometryLength"`
}

type directionResponse struct {
	Instruction        string  `json:"instruction"`
	TurnType           string  `json:"turnType"`
	Stop               string  `json:"stop"`
	Lat                float64 `json:"lat"`
	Lon                float64 `json:"lon"`
	Bearing            float64 `json:"bearing"`
	CumulativeFare     float64 `json:"cumulativeFare"`
	CumulativeDistance float64 `json:"cumulativeDistance"`
}

type bestPathResponse struct {
	Path          []string            `json:"path"`
	Legs          []legResponse       `json:"legs"`
	TotalFare     float64             `json:"totalFare"`
	TotalDistance float64             `json:"totalDistance"`
	TotalStops    int                 `json:"totalStops"`
	Priority      string              `json:"priority"`
	Polyline      string              `json:"polyline"`
	Directions    []directionResponse `json:"directions"`
}

func NewBestPathResponse(res *usecases.BestPathResult) bestPathResponse {
	pr := res.GetPath()
	legs := pr.GetLegs()
	geoms := res.GetLegGeometry()

	legResp := make([]legResponse, len(legs))
	for i, l := range legs {
		legResp[i] = legResponse{
			From:     l.GetFrom(),
			To:       l.GetTo(),
			Fare:     l.GetFare(),
			Distance: l.GetDistance(),
		}
		if i < len(geoms) {
			legResp[i].Polyline = geoms[i].GetPolyline()
			legResp[i].GeometryLength = geoms[i].GetLength()
		}
	}

	dirs := res.GetDirections()
	dirResp := make([]directionResponse, len(dirs))
	for i, d := range dirs {
		dirResp[i] = directionResponse{
			Instruction:        d.GetInstruction(),
			TurnType:           d.GetTurnType(),
			Stop:               d.GetStop(),
			Lat:                d.GetPoint().GetLat(),
			Lon:                d.GetPoint().GetLon(),
			Bearing:            d.GetBearing(),
			CumulativeFare:     d.GetCumulativeFare(),
			CumulativeDistance: d.GetCumulativeDistance(),
		}
	}

	return bestPathResponse{
		Path:          pr.GetPath(),
		Legs:          legResp,
		TotalFare:     pr.GetTotalFare(),
		TotalDistance: pr.GetTotalDistance(),
		TotalStops:    pr.GetTotalStops(),
		Priority:      res.GetPriority().String(),
		Polyline:      res.GetPathPolyline(),
		Directions:    dirResp,
	}
}

type batchItemResponse struct {
	From   string            `json:"from"`
	To     string            `json:"to"`
	Result *bestPathResponse `json:"result,omitempty"`
	Error  *errorBody        `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type stopResponse struct {
	ID   string  `json:"id,omitempty"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func NewStopResponse(s datastructure.Stop) stopResponse {
	return stopResponse{ID: s.ID, Name: s.Name, Lat: s.Lat, Lon: s.Lon}
}

type nearestStopResponse struct {
	Stop     stopResponse `json:"stop"`
	Distance float64      `json:"distance"`
}
