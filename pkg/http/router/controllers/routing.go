package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/navigatorx-transit/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-transit/pkg/http/usecases"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/bestPath", api.bestPath)
	group.GET("/bestPathByCoords", api.bestPathByCoords)
	group.POST("/batchBestPaths", api.batchBestPaths)
	group.GET("/stops", api.stops)
	group.GET("/nearestStop", api.nearestStop)
	group.GET("/graph.dot", api.graphDOT)
}

// validateRequest. validator error translated to english, nil if request is valid
func validateRequest(request interface{}) error {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

func parseFloatParam(query map[string][]string, key string) (float64, error) {
	vals := query[key]
	if len(vals) == 0 {
		return 0, fmt.Errorf("%s is required and must be a valid float", key)
	}
	v, err := strconv.ParseFloat(vals[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s is required and must be a valid float", key)
	}
	return v, nil
}

func (api *routingAPI) bestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	request := bestPathRequest{
		From:     query.Get("from"),
		To:       query.Get("to"),
		Priority: query.Get("priority"),
	}

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.BestPath(request.From, request.To, request.Priority)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBestPathResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) bestPathByCoords(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request bestPathByCoordsRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = parseFloatParam(query, "origin_lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.OriginLon, err = parseFloatParam(query, "origin_lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.DestinationLat, err = parseFloatParam(query, "destination_lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.DestinationLon, err = parseFloatParam(query, "destination_lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Priority = query.Get("priority")

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.BestPathByCoords(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, request.Priority)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBestPathResponse(res)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) batchBestPaths(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchBestPathsRequest

	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("body must be a valid json object"))
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	queries := make([]usecases.BestPathQuery, len(request.Queries))
	for i, q := range request.Queries {
		queries[i] = q.toQuery()
	}

	results := api.routingService.BatchBestPaths(queries)
	resp := make([]batchItemResponse, len(results))
	for i, res := range results {
		resp[i] = batchItemResponse{From: res.Query.From, To: res.Query.To}
		if res.Err != nil {
			status := statusCodeOf(res.Err)
			resp[i].Error = &errorBody{Code: http.StatusText(status), Message: res.Err.Error()}
			continue
		}
		item := NewBestPathResponse(res.Result)
		resp[i].Result = &item
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) stops(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	stops := api.routingService.Stops()
	resp := make([]stopResponse, len(stops))
	for i, s := range stops {
		resp[i] = NewStopResponse(s)
	}
	sort.Slice(resp, func(i, j int) bool {
		return resp[i].Name < resp[j].Name
	})

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) nearestStop(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestStopRequest
		err     error
	)
	query := r.URL.Query()

	request.Lat, err = parseFloatParam(query, "lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Lon, err = parseFloatParam(query, "lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	stop, dist, err := api.routingService.NearestStop(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := nearestStopResponse{Stop: NewStopResponse(stop), Distance: dist}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) graphDOT(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	dot, err := api.routingService.GraphDOT()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(dot)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(dot)); err != nil {
		api.log.Warn("failed to write graph response", zap.Error(err))
	}
}
