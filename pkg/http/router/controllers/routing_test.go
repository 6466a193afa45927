package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine"
	helper "github.com/lintang-b-s/navigatorx-transit/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-transit/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-transit/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *httprouter.Router {
	t.Helper()
	stops := []da.Stop{
		da.NewStop("1", "A", 0, 0),
		da.NewStop("2", "B", 0, 1),
		da.NewStop("3", "C", 0, 2),
		da.NewStop("4", "D", 5, 5),
	}
	routes := []da.Route{
		da.NewRoute("A", "B", 1),
		da.NewRoute("B", "C", 1),
		da.NewRoute("A", "C", 5),
	}
	e, err := engine.NewEngine(stops, routes, zap.NewNop(), 32)
	require.NoError(t, err)

	rt := spatialindex.NewRtree()
	rt.Build(stops, zap.NewNop())
	rs := usecases.NewRoutingService(zap.NewNop(), e, rt, 1.0, 2)

	router := httprouter.New()
	New(rs, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBestPathHandler(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name       string
		target     string
		wantStatus int
		wantPath   []string
		wantFare   float64
		wantStops  int
	}{
		{
			name:       "default priority is fare",
			target:     "/api/bestPath?from=A&to=C",
			wantStatus: http.StatusOK,
			wantPath:   []string{"A", "B", "C"},
			wantFare:   2,
			wantStops:  2,
		},
		{
			name:       "stops priority",
			target:     "/api/bestPath?from=A&to=C&priority=stops",
			wantStatus: http.StatusOK,
			wantPath:   []string{"A", "C"},
			wantFare:   5,
			wantStops:  1,
		},
		{
			name:       "same stop",
			target:     "/api/bestPath?from=B&to=B",
			wantStatus: http.StatusOK,
			wantPath:   []string{"B"},
		},
		{
			name:       "unknown priority",
			target:     "/api/bestPath?from=A&to=C&priority=time",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing from",
			target:     "/api/bestPath?to=C",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown stop",
			target:     "/api/bestPath?from=A&to=Z",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unreachable stop",
			target:     "/api/bestPath?from=A&to=D",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantStatus != http.StatusOK {
				var resp errorEnvelope
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, http.StatusText(tt.wantStatus), resp.Error.Code)
				assert.NotEmpty(t, resp.Error.Message)
				return
			}

			var resp struct {
				Data bestPathResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantPath, resp.Data.Path)
			assert.Equal(t, tt.wantFare, resp.Data.TotalFare)
			assert.Equal(t, tt.wantStops, resp.Data.TotalStops)
			assert.Len(t, resp.Data.Legs, tt.wantStops)
		})
	}
}

func TestBestPathByCoordsHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet,
		"/api/bestPathByCoords?origin_lat=0.001&origin_lon=0&destination_lat=0&destination_lon=2.001", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data bestPathResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"A", "B", "C"}, resp.Data.Path)
	assert.Equal(t, "fare", resp.Data.Priority)
	assert.NotEmpty(t, resp.Data.Polyline)

	rec = doRequest(t, router, http.MethodGet,
		"/api/bestPathByCoords?origin_lat=abc&origin_lon=0&destination_lat=0&destination_lon=2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet,
		"/api/bestPathByCoords?origin_lat=91&origin_lon=0&destination_lat=0&destination_lon=2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearestStopHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/nearestStop?lat=0.001&lon=1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data nearestStopResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "B", resp.Data.Stop.Name)
	assert.InDelta(t, 0.111, resp.Data.Distance, 0.01)

	rec = doRequest(t, router, http.MethodGet, "/api/nearestStop?lat=40&lon=40", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStopsHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/stops", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []stopResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 4)
	for i, want := range []string{"A", "B", "C", "D"} {
		assert.Equal(t, want, resp.Data[i].Name)
	}
}

func TestBatchBestPathsHandler(t *testing.T) {
	router := newTestRouter(t)

	body := `{"queries":[{"from":"A","to":"C"},{"from":"A","to":"Z"},{"from":"C","to":"A","priority":"stops"}]}`
	rec := doRequest(t, router, http.MethodPost, "/api/batchBestPaths", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data []batchItemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)

	require.NotNil(t, resp.Data[0].Result)
	assert.Equal(t, []string{"A", "B", "C"}, resp.Data[0].Result.Path)

	assert.Nil(t, resp.Data[1].Result)
	require.NotNil(t, resp.Data[1].Error)
	assert.Equal(t, http.StatusText(http.StatusNotFound), resp.Data[1].Error.Code)

	require.NotNil(t, resp.Data[2].Result)
	assert.Equal(t, []string{"C", "A"}, resp.Data[2].Result.Path)

	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `queries`},
		{name: "empty batch", body: `{"queries":[]}`},
		{name: "bad priority inside batch", body: `{"queries":[{"from":"A","to":"C","priority":"fast"}]}`},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/batchBestPaths", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGraphDOTHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/graph.dot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/vnd.graphviz")
	assert.Contains(t, rec.Body.String(), "transit")
	assert.Contains(t, rec.Body.String(), `"A"`)
}
