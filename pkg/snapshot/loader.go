package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptySnapshot     = errors.New("snapshot has no stops")
	ErrDuplicateStopName = errors.New("duplicate stop name")
	ErrUnknownFormat     = errors.New("unknown snapshot format")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// coords are [latitude, longitude] in degrees. a missing coords is an error, not (0,0).
type stopRecord struct {
	ID     string      `json:"id" yaml:"id"`
	Name   string      `json:"name" yaml:"name" validate:"required"`
	Coords *[2]float64 `json:"coords" yaml:"coords" validate:"required"`
}

type waypointRecord struct {
	Name   string      `json:"name" yaml:"name"`
	Coords *[2]float64 `json:"coords" yaml:"coords" validate:"required"`
}

type routeRecord struct {
	From          string           `json:"from" yaml:"from" validate:"required"`
	To            string           `json:"to" yaml:"to" validate:"required"`
	Fare          float64          `json:"fare" yaml:"fare"`
	Distance      *float64         `json:"distance" yaml:"distance"`
	FromCoords    *[2]float64      `json:"fromCoords" yaml:"fromCoords"`
	ToCoords      *[2]float64      `json:"toCoords" yaml:"toCoords"`
	Intermediates []waypointRecord `json:"intermediates" yaml:"intermediates" validate:"dive"`
}

type snapshotRecord struct {
	Stops  []stopRecord  `json:"stops" yaml:"stops" validate:"dive"`
	Routes []routeRecord `json:"routes" yaml:"routes" validate:"dive"`
}

// Snapshot. stops & routes of a transit network, validated and ready for the graph builder
type Snapshot struct {
	Stops  []datastructure.Stop
	Routes []datastructure.Route
}

func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

func LoadFile(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open snapshot file: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

func Decode(r io.Reader, format Format) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read snapshot: %w", err)
	}

	var rec snapshotRecord
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&rec)
	case FormatYAML:
		err = yaml.Unmarshal(data, &rec)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse %s snapshot: %w", format, err)
	}

	return rec.toSnapshot()
}

func (rec snapshotRecord) toSnapshot() (*Snapshot, error) {
	validate := validator.New()
	if err := validate.Struct(rec); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	if len(rec.Stops) == 0 {
		return nil, ErrEmptySnapshot
	}

	snap := &Snapshot{
		Stops:  make([]datastructure.Stop, 0, len(rec.Stops)),
		Routes: make([]datastructure.Route, 0, len(rec.Routes)),
	}

	// stop names are graph vertex keys and must be unique
	seen := make(map[string]int, len(rec.Stops))
	for i, s := range rec.Stops {
		if j, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%w: %q at stops[%d] and stops[%d]", ErrDuplicateStopName, s.Name, j, i)
		}
		seen[s.Name] = i

		stop := datastructure.NewStop(s.ID, s.Name, s.Coords[0], s.Coords[1])
		if err := validate.Struct(stop); err != nil {
			return nil, fmt.Errorf("invalid stop %q: %w", s.Name, err)
		}
		snap.Stops = append(snap.Stops, stop)
	}

	for i, r := range rec.Routes {
		route := datastructure.Route{
			From:     r.From,
			To:       r.To,
			Fare:     r.Fare,
			Distance: r.Distance,
		}

		// display coordinates default to the endpoint stops
		if r.FromCoords != nil {
			c := geo.NewCoordinate(r.FromCoords[0], r.FromCoords[1])
			route.FromCoords = &c
		} else if j, ok := seen[r.From]; ok {
			c := snap.Stops[j].GetCoordinate()
			route.FromCoords = &c
		}
		if r.ToCoords != nil {
			c := geo.NewCoordinate(r.ToCoords[0], r.ToCoords[1])
			route.ToCoords = &c
		} else if j, ok := seen[r.To]; ok {
			c := snap.Stops[j].GetCoordinate()
			route.ToCoords = &c
		}

		for _, wp := range r.Intermediates {
			route.Intermediates = append(route.Intermediates, datastructure.NewWaypoint(wp.Name, wp.Coords[0], wp.Coords[1]))
		}

		if err := validate.Struct(route); err != nil {
			return nil, fmt.Errorf("invalid route %d (%s -> %s): %w", i, r.From, r.To, err)
		}
		snap.Routes = append(snap.Routes, route)
	}

	return snap, nil
}
