package gtfsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/tadashi-aikawa/hibou/pkg/database"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Tables returns the table names db get accepts.
func Tables() []string {
	return []string{"agency", "stops", "routes", "trips", "service-routes", "trips-to-service-routes", "nodes"}
}

// Export writes every row of one table to out in the requested format.
func Export(ctx context.Context, databasePath string, table string, format string, out io.Writer) error {
	db, err := database.Connect(databasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	var rows interface{}
	switch table {
	case "agency":
		rows, err = db.SelectAgencies(ctx)
	case "stops":
		rows, err = db.SelectStops(ctx)
	case "routes":
		rows, err = db.SelectRoutes(ctx)
	case "trips":
		rows, err = db.SelectTrips(ctx)
	case "service-routes":
		rows, err = db.SelectServiceRoutes(ctx)
	case "trips-to-service-routes":
		rows, err = db.SelectTripServiceRoutes(ctx)
	case "nodes":
		rows, err = db.SelectNodes(ctx)
	default:
		return fmt.Errorf("unknown table %q", table)
	}
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		if err := gocsv.Marshal(rows, out); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rows); err != nil {
			return fmt.Errorf("failed to write json: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	return nil
}
