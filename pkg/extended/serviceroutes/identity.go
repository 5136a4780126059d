package serviceroutes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/tadashi-aikawa/hibou/pkg/util"
)

var ErrMalformedIdentityTable = errors.New("malformed identity table")

// IdentityRow pins one oriented stop pattern to a caller-chosen service
// route id, so ids stay stable across feed versions.
type IdentityRow struct {
	StopPattern      string `csv:"stop_pattern"`
	DirectionID      int8   `csv:"direction_id"`
	ServiceRouteID   int    `csv:"service_route_id"`
	ServiceRouteName string `csv:"service_route_name"`
}

// IdentityIndex resolves pattern keys against a user supplied identity
// table.
type IdentityIndex struct {
	rows map[string]IdentityRow
	defs map[int]ServiceRoute
}

// LoadIdentityIndex reads and validates an identity table CSV. Every schema
// violation surfaces here, before anything is written to the database.
func LoadIdentityIndex(path string) (*IdentityIndex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open identity table: %w", err)
	}
	defer file.Close()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(util.SkipBOM(in))
		r.FieldsPerRecord = -1
		return r
	})

	var rows []IdentityRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedIdentityTable, err)
	}

	index := &IdentityIndex{
		rows: map[string]IdentityRow{},
		defs: map[int]ServiceRoute{},
	}

	for i, row := range rows {
		line := i + 2 // line 1 is the header

		if row.StopPattern == "" {
			return nil, fmt.Errorf("%w: line %d has an empty stop_pattern", ErrMalformedIdentityTable, line)
		}
		if row.DirectionID != 0 && row.DirectionID != 1 {
			return nil, fmt.Errorf("%w: line %d direction_id must be 0 or 1, got %d", ErrMalformedIdentityTable, line, row.DirectionID)
		}
		if row.ServiceRouteID < 0 {
			return nil, fmt.Errorf("%w: line %d service_route_id must not be negative, got %d", ErrMalformedIdentityTable, line, row.ServiceRouteID)
		}
		if _, exists := index.rows[row.StopPattern]; exists {
			return nil, fmt.Errorf("%w: line %d repeats stop_pattern %q", ErrMalformedIdentityTable, line, row.StopPattern)
		}

		index.rows[row.StopPattern] = row

		// The direction 0 row defines a route in service_routes; the first
		// row in file order stands in when the table never declares one
		definition, exists := index.defs[row.ServiceRouteID]
		if !exists || (definition.DirectionID != 0 && row.DirectionID == 0) {
			index.defs[row.ServiceRouteID] = ServiceRoute{
				ID:          row.ServiceRouteID,
				DirectionID: row.DirectionID,
				Name:        row.ServiceRouteName,
				PatternKey:  row.StopPattern,
			}
		}
	}

	return index, nil
}

func (index *IdentityIndex) Lookup(key string) (IdentityRow, bool) {
	row, ok := index.rows[key]

	return row, ok
}

// Definition returns the route record an id resolves to in service_routes.
func (index *IdentityIndex) Definition(id int) ServiceRoute {
	return index.defs[id]
}
