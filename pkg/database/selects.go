package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tadashi-aikawa/hibou/pkg/extended/nodes"
	"github.com/tadashi-aikawa/hibou/pkg/extended/serviceroutes"
	"github.com/tadashi-aikawa/hibou/pkg/gtfsjp"
)

// rubyLanguage is the BCP 47 tag GTFS-JP feeds use for katakana readings.
const rubyLanguage = "ja-Hrkt"

func queryAll[T any](ctx context.Context, conn *sql.DB, query string, args []interface{}, scan func(rows *sql.Rows, row *T) error) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		var row T
		if err := scan(rows, &row); err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

// SelectStopTimeDetails returns every stop time joined with its stop name,
// ordered by trip and sequence. Empty tripID or stopID leaves that filter off.
func (db *DB) SelectStopTimeDetails(ctx context.Context, tripID string, stopID string) ([]gtfsjp.StopTimeDetail, error) {
	query := `select st.trip_id, st.stop_sequence, st.stop_id, s.stop_name, st.stop_headsign
		from stop_times st
		join stops s on s.stop_id = st.stop_id
		where (? = '' or st.trip_id = ?) and (? = '' or st.stop_id = ?)
		order by st.trip_id, st.stop_sequence`

	details, err := queryAll(ctx, db.conn, query, []interface{}{tripID, tripID, stopID, stopID},
		func(rows *sql.Rows, detail *gtfsjp.StopTimeDetail) error {
			return rows.Scan(&detail.TripID, &detail.StopSequence, &detail.StopID, &detail.StopName, &detail.StopHeadsign)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to select stop time details: %w", err)
	}

	return details, nil
}

// SelectStopDetails returns every stop with its katakana reading, resolved
// from the translations table. Legacy feeds key translations by the source
// string, v3 feeds by table, field and record.
func (db *DB) SelectStopDetails(ctx context.Context, legacyTranslations bool) ([]gtfsjp.StopDetail, error) {
	var query string
	if legacyTranslations {
		query = `select s.stop_id, s.stop_name,
			(select t.translation from translations t
				where t.trans_id = s.stop_name and t.lang = ? limit 1),
			s.parent_station
		from stops s
		order by s.stop_id`
	} else {
		query = `select s.stop_id, s.stop_name,
			(select t.translation from translations t
				where t.table_name = 'stops' and t.field_name = 'stop_name' and t.language = ?
					and (t.record_id = s.stop_id or t.field_value = s.stop_name)
				limit 1),
			s.parent_station
		from stops s
		order by s.stop_id`
	}

	details, err := queryAll(ctx, db.conn, query, []interface{}{rubyLanguage},
		func(rows *sql.Rows, detail *gtfsjp.StopDetail) error {
			return rows.Scan(&detail.StopID, &detail.StopName, &detail.StopRuby, &detail.ParentStation)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to select stop details: %w", err)
	}

	return details, nil
}

func (db *DB) SelectAgencies(ctx context.Context) ([]gtfsjp.Agency, error) {
	query := `select agency_id, agency_name, agency_url, agency_timezone, agency_lang, agency_phone, agency_fare_url, agency_email
		from agency order by agency_id`

	agencies, err := queryAll(ctx, db.conn, query, nil, func(rows *sql.Rows, a *gtfsjp.Agency) error {
		return rows.Scan(&a.ID, &a.Name, &a.URL, &a.Timezone, &a.Language, &a.Phone, &a.FareURL, &a.Email)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select agencies: %w", err)
	}

	return agencies, nil
}

func (db *DB) SelectStops(ctx context.Context) ([]gtfsjp.Stop, error) {
	query := `select stop_id, stop_code, stop_name, stop_desc, stop_lat, stop_lon, zone_id, stop_url, location_type, parent_station, stop_timezone, wheelchair_boarding, platform_code
		from stops order by stop_id`

	stops, err := queryAll(ctx, db.conn, query, nil, func(rows *sql.Rows, s *gtfsjp.Stop) error {
		return rows.Scan(&s.ID, &s.Code, &s.Name, &s.Description, &s.Latitude, &s.Longitude, &s.ZoneID, &s.URL, &s.LocationType, &s.ParentStation, &s.Timezone, &s.Wheelchair, &s.PlatformCode)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select stops: %w", err)
	}

	return stops, nil
}

func (db *DB) SelectRoutes(ctx context.Context) ([]gtfsjp.Route, error) {
	query := `select route_id, agency_id, route_short_name, route_long_name, route_desc, route_type, route_url, route_color, route_text_color, jp_parent_route_id
		from routes order by route_id`

	routes, err := queryAll(ctx, db.conn, query, nil, func(rows *sql.Rows, r *gtfsjp.Route) error {
		return rows.Scan(&r.ID, &r.AgencyID, &r.ShortName, &r.LongName, &r.Description, &r.Type, &r.URL, &r.Colour, &r.TextColour, &r.ParentRouteID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select routes: %w", err)
	}

	return routes, nil
}

func (db *DB) SelectTrips(ctx context.Context) ([]gtfsjp.Trip, error) {
	query := `select route_id, service_id, trip_id, trip_headsign, trip_short_name, direction_id, block_id, shape_id, wheelchair_accessible, bikes_allowed, jp_trip_desc, jp_trip_desc_symbol, jp_office_id
		from trips order by trip_id`

	trips, err := queryAll(ctx, db.conn, query, nil, func(rows *sql.Rows, t *gtfsjp.Trip) error {
		return rows.Scan(&t.RouteID, &t.ServiceID, &t.ID, &t.Headsign, &t.ShortName, &t.DirectionID, &t.BlockID, &t.ShapeID, &t.WheelchairAccessible, &t.BikesAllowed, &t.Description, &t.DescriptionSymbol, &t.OfficeID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select trips: %w", err)
	}

	return trips, nil
}

func (db *DB) SelectServiceRoutes(ctx context.Context) ([]serviceroutes.ServiceRoute, error) {
	query := `select service_route_id, direction_id, service_route_name
		from service_routes order by service_route_id`

	routes, err := queryAll(ctx, db.conn, query, nil, func(rows *sql.Rows, sr *serviceroutes.ServiceRoute) error {
		return rows.Scan(&sr.ID, &sr.DirectionID, &sr.Name)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select service routes: %w", err)
	}

	return routes, nil
}

func (db *DB) SelectTripServiceRoutes(ctx context.Context) ([]serviceroutes.TripServiceRoute, error) {
	query := `select trip_id, service_route_id, service_route_direction_id
		from trips_to_service_routes order by trip_id`

	assignments, err := queryAll(ctx, db.conn, query, nil, func(rows *sql.Rows, tsr *serviceroutes.TripServiceRoute) error {
		return rows.Scan(&tsr.TripID, &tsr.ID, &tsr.DirectionID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select trip service routes: %w", err)
	}

	return assignments, nil
}

func (db *DB) SelectNodes(ctx context.Context) ([]nodes.Node, error) {
	query := `select node_id, node_name, node_ruby
		from nodes order by node_id`

	nodeRows, err := queryAll(ctx, db.conn, query, nil, func(rows *sql.Rows, n *nodes.Node) error {
		return rows.Scan(&n.ID, &n.Name, &n.Ruby)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select nodes: %w", err)
	}

	return nodeRows, nil
}
