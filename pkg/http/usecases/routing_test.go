package usecases

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/lintang-b-s/navigatorx-transit/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *RoutingService {
	t.Helper()
	stops := []da.Stop{
		da.NewStop("1", "A", 0, 0),
		da.NewStop("2", "B", 0, 1),
		da.NewStop("3", "C", 0, 2),
		da.NewStop("4", "D", 5, 5),
	}
	routes := []da.Route{
		da.NewRoute("A", "B", 1).WithIntermediates(da.NewWaypoint("via", 0.1, 0.5)),
		da.NewRoute("B", "C", 1),
		da.NewRoute("A", "C", 5),
	}
	e, err := engine.NewEngine(stops, routes, zap.NewNop(), 32)
	require.NoError(t, err)

	rt := spatialindex.NewRtree()
	rt.Build(stops, zap.NewNop())
	return NewRoutingService(zap.NewNop(), e, rt, 1.0, 2)
}

func errCode(t *testing.T, err error) error {
	t.Helper()
	var uErr *util.Error
	require.True(t, errors.As(err, &uErr), "expected *util.Error, got %T", err)
	return uErr.Code()
}

func TestBestPath(t *testing.T) {
	rs := newTestService(t)

	res, err := rs.BestPath("A", "C", "")
	require.NoError(t, err)
	assert.Equal(t, pkg.PRIORITY_FARE, res.GetPriority())
	assert.Equal(t, []string{"A", "B", "C"}, res.GetPath().GetPath())
	require.Len(t, res.GetLegGeometry(), 2)

	first := res.GetLegGeometry()[0]
	require.Len(t, first.GetCoords(), 3)
	assert.Equal(t, geo.NewCoordinate(0.1, 0.5), first.GetCoords()[1])
	assert.Greater(t, first.GetLength(), res.GetPath().GetLegs()[0].GetDistance())
	assert.NotEmpty(t, res.GetPathPolyline())

	decoded, err := geo.CoordsFromPolyline(res.GetPathPolyline())
	require.NoError(t, err)
	assert.Len(t, decoded, 4)
}

func TestBestPathReverseLegGeometry(t *testing.T) {
	rs := newTestService(t)

	res, err := rs.BestPath("B", "A", "fare")
	require.NoError(t, err)
	require.Len(t, res.GetLegGeometry(), 1)
	coords := res.GetLegGeometry()[0].GetCoords()
	require.Len(t, coords, 3)
	assert.Equal(t, geo.NewCoordinate(0, 1), coords[0])
	assert.Equal(t, geo.NewCoordinate(0, 0), coords[2])
}

func TestBestPathErrors(t *testing.T) {
	rs := newTestService(t)

	testCases := []struct {
		name     string
		from, to string
		priority string
		wantCode error
		wantErr  error
	}{
		{name: "bad priority", from: "A", to: "C", priority: "cheapest", wantCode: util.ErrBadParamInput, wantErr: pkg.ErrInvalidPriority},
		{name: "unknown stop", from: "A", to: "Z", wantCode: util.ErrNotFound, wantErr: ERRSTOPNOTFOUND},
		{name: "unreachable", from: "A", to: "D", priority: "stops", wantCode: util.ErrNotFound, wantErr: ERRPATHNOTFOUND},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rs.BestPath(tt.from, tt.to, tt.priority)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errCode(t, err))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBestPathSameStop(t *testing.T) {
	rs := newTestService(t)
	res, err := rs.BestPath("D", "D", "distance")
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, res.GetPath().GetPath())
	assert.Empty(t, res.GetLegGeometry())
}

func TestBestPathByCoords(t *testing.T) {
	rs := newTestService(t)

	res, err := rs.BestPathByCoords(0.001, 0.001, 0.001, 2.001, "stops")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, res.GetPath().GetPath())

	_, err = rs.BestPathByCoords(30, 30, 0, 0, "stops")
	require.Error(t, err)
	assert.Equal(t, util.ErrNotFound, errCode(t, err))
}

func TestNearestStop(t *testing.T) {
	rs := newTestService(t)
	stop, dist, err := rs.NearestStop(0, 1.001)
	require.NoError(t, err)
	assert.Equal(t, "B", stop.Name)
	assert.Equal(t, "2", stop.ID)
	assert.InDelta(t, 0.111, dist, 0.001)
}

func TestBatchBestPaths(t *testing.T) {
	rs := newTestService(t)
	results := rs.BatchBestPaths([]BestPathQuery{
		{From: "A", To: "C", Priority: "fare"},
		{From: "A", To: "C", Priority: "stops"},
		{From: "A", To: "D"},
	})

	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 2, results[0].Result.GetPath().GetTotalStops())
	require.NoError(t, results[1].Err)
	assert.Equal(t, 1, results[1].Result.GetPath().GetTotalStops())
	assert.ErrorIs(t, results[2].Err, ERRPATHNOTFOUND)
	assert.Equal(t, "D", results[2].Query.To)
}

func TestGraphDOT(t *testing.T) {
	rs := newTestService(t)
	dot, err := rs.GraphDOT()
	require.NoError(t, err)
	assert.Contains(t, dot, "transit")
	assert.Contains(t, dot, `"A"`)
	assert.Contains(t, dot, "--")
}

func TestBestPathDirections(t *testing.T) {
	rs := newTestService(t)

	res, err := rs.BestPath("A", "C", "fare")
	require.NoError(t, err)
	dirs := res.GetDirections()
	require.Len(t, dirs, 3)
	assert.Equal(t, "A", dirs[0].GetStop())
	assert.Equal(t, "B", dirs[1].GetStop())
	assert.Equal(t, "Arrive at C", dirs[2].GetInstruction())
	assert.Equal(t, res.GetPath().GetTotalFare(), dirs[2].GetCumulativeFare())

	res, err = rs.BestPath("B", "B", "")
	require.NoError(t, err)
	require.Len(t, res.GetDirections(), 1)
	assert.Equal(t, geo.NewCoordinate(0, 1), res.GetDirections()[0].GetPoint())
}

func TestReplaceSnapshot(t *testing.T) {
	rs := newTestService(t)

	_, _, err := rs.NearestStop(0, 3)
	require.Error(t, err)

	err = rs.ReplaceSnapshot([]da.Stop{
		da.NewStop("1", "A", 0, 0),
		da.NewStop("5", "E", 0, 3),
	}, []da.Route{da.NewRoute("A", "E", 2)})
	require.NoError(t, err)

	stop, _, err := rs.NearestStop(0, 3)
	require.NoError(t, err)
	assert.Equal(t, "E", stop.Name)

	// B left the network, so the nearest stop index must not snap to it anymore
	_, _, err = rs.NearestStop(0, 1)
	require.Error(t, err)
	assert.Equal(t, util.ErrNotFound, errCode(t, err))

	res, err := rs.BestPath("A", "E", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "E"}, res.GetPath().GetPath())

	_, err = rs.BestPath("A", "C", "")
	assert.ErrorIs(t, err, ERRSTOPNOTFOUND)
	assert.Len(t, rs.Stops(), 2)
}
