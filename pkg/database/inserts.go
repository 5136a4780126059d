package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tadashi-aikawa/hibou/pkg/extended/nodes"
	"github.com/tadashi-aikawa/hibou/pkg/extended/serviceroutes"
	"github.com/tadashi-aikawa/hibou/pkg/gtfsjp"
)

// bulkInsert writes rows into one table inside a single transaction, so a
// table is always loaded completely or not at all. With replace set, the
// table's existing rows are cleared in the same transaction first.
func (db *DB) bulkInsert(ctx context.Context, table string, columns []string, count int, replace bool, bind func(i int) []interface{}) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx, "delete from "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"insert into %s (%s) values (%s)", table, strings.Join(columns, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < count; i++ {
		if _, err := stmt.ExecContext(ctx, bind(i)...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}

	return nil
}

func (db *DB) InsertAgencies(ctx context.Context, agencies []gtfsjp.Agency) error {
	columns := []string{"agency_id", "agency_name", "agency_url", "agency_timezone", "agency_lang", "agency_phone", "agency_fare_url", "agency_email"}

	return db.bulkInsert(ctx, "agency", columns, len(agencies), false, func(i int) []interface{} {
		a := agencies[i]
		return []interface{}{a.ID, a.Name, a.URL, a.Timezone, a.Language, a.Phone, a.FareURL, a.Email}
	})
}

func (db *DB) InsertAgenciesJP(ctx context.Context, agencies []gtfsjp.AgencyJP) error {
	columns := []string{"agency_id", "agency_official_name", "agency_zip_number", "agency_address", "agency_president_pos", "agency_president_name"}

	return db.bulkInsert(ctx, "agency_jp", columns, len(agencies), false, func(i int) []interface{} {
		a := agencies[i]
		return []interface{}{a.AgencyID, a.OfficialName, a.ZipNumber, a.Address, a.PresidentPos, a.PresidentName}
	})
}

func (db *DB) InsertStops(ctx context.Context, stops []gtfsjp.Stop) error {
	columns := []string{"stop_id", "stop_code", "stop_name", "stop_desc", "stop_lat", "stop_lon", "zone_id", "stop_url", "location_type", "parent_station", "stop_timezone", "wheelchair_boarding", "platform_code"}

	return db.bulkInsert(ctx, "stops", columns, len(stops), false, func(i int) []interface{} {
		s := stops[i]
		return []interface{}{s.ID, s.Code, s.Name, s.Description, s.Latitude, s.Longitude, s.ZoneID, s.URL, s.LocationType, s.ParentStation, s.Timezone, s.Wheelchair, s.PlatformCode}
	})
}

func (db *DB) InsertRoutes(ctx context.Context, routes []gtfsjp.Route) error {
	columns := []string{"route_id", "agency_id", "route_short_name", "route_long_name", "route_desc", "route_type", "route_url", "route_color", "route_text_color", "jp_parent_route_id"}

	return db.bulkInsert(ctx, "routes", columns, len(routes), false, func(i int) []interface{} {
		r := routes[i]
		return []interface{}{r.ID, r.AgencyID, r.ShortName, r.LongName, r.Description, r.Type, r.URL, r.Colour, r.TextColour, r.ParentRouteID}
	})
}

func (db *DB) InsertRoutesJP(ctx context.Context, routes []gtfsjp.RouteJP) error {
	columns := []string{"route_id", "route_update_date", "origin_stop", "via_stop", "destination_stop"}

	return db.bulkInsert(ctx, "routes_jp", columns, len(routes), false, func(i int) []interface{} {
		r := routes[i]
		return []interface{}{r.RouteID, r.UpdateDate, r.OriginStop, r.ViaStop, r.DestinationStop}
	})
}

func (db *DB) InsertOffices(ctx context.Context, offices []gtfsjp.OfficeJP) error {
	columns := []string{"office_id", "office_name", "office_url", "office_phone"}

	return db.bulkInsert(ctx, "office_jp", columns, len(offices), false, func(i int) []interface{} {
		o := offices[i]
		return []interface{}{o.ID, o.Name, o.URL, o.Phone}
	})
}

func (db *DB) InsertTrips(ctx context.Context, trips []gtfsjp.Trip) error {
	columns := []string{"route_id", "service_id", "trip_id", "trip_headsign", "trip_short_name", "direction_id", "block_id", "shape_id", "wheelchair_accessible", "bikes_allowed", "jp_trip_desc", "jp_trip_desc_symbol", "jp_office_id"}

	return db.bulkInsert(ctx, "trips", columns, len(trips), false, func(i int) []interface{} {
		t := trips[i]
		return []interface{}{t.RouteID, t.ServiceID, t.ID, t.Headsign, t.ShortName, t.DirectionID, t.BlockID, t.ShapeID, t.WheelchairAccessible, t.BikesAllowed, t.Description, t.DescriptionSymbol, t.OfficeID}
	})
}

func (db *DB) InsertStopTimes(ctx context.Context, stopTimes []gtfsjp.StopTime) error {
	columns := []string{"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence", "stop_headsign", "pickup_type", "drop_off_type", "shape_dist_traveled", "timepoint"}

	return db.bulkInsert(ctx, "stop_times", columns, len(stopTimes), false, func(i int) []interface{} {
		st := stopTimes[i]
		return []interface{}{st.TripID, st.ArrivalTime, st.DepartureTime, st.StopID, st.StopSequence, st.StopHeadsign, st.PickupType, st.DropOffType, st.ShapeDistTraveled, st.Timepoint}
	})
}

func (db *DB) InsertCalendars(ctx context.Context, calendars []gtfsjp.Calendar) error {
	columns := []string{"service_id", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "start_date", "end_date"}

	return db.bulkInsert(ctx, "calendar", columns, len(calendars), false, func(i int) []interface{} {
		c := calendars[i]
		return []interface{}{c.ServiceID, c.Monday, c.Tuesday, c.Wednesday, c.Thursday, c.Friday, c.Saturday, c.Sunday, c.Start, c.End}
	})
}

func (db *DB) InsertCalendarDates(ctx context.Context, calendarDates []gtfsjp.CalendarDate) error {
	columns := []string{"service_id", "date", "exception_type"}

	return db.bulkInsert(ctx, "calendar_dates", columns, len(calendarDates), false, func(i int) []interface{} {
		cd := calendarDates[i]
		return []interface{}{cd.ServiceID, cd.Date, cd.ExceptionType}
	})
}

func (db *DB) InsertFareAttributes(ctx context.Context, fareAttributes []gtfsjp.FareAttribute) error {
	columns := []string{"fare_id", "price", "currency_type", "payment_method", "transfers", "agency_id", "transfer_duration"}

	return db.bulkInsert(ctx, "fare_attributes", columns, len(fareAttributes), false, func(i int) []interface{} {
		fa := fareAttributes[i]
		return []interface{}{fa.FareID, fa.Price, fa.CurrencyType, fa.PaymentMethod, fa.Transfers, fa.AgencyID, fa.TransferDuration}
	})
}

func (db *DB) InsertFareRules(ctx context.Context, fareRules []gtfsjp.FareRule) error {
	columns := []string{"fare_id", "route_id", "origin_id", "destination_id", "contains_id"}

	return db.bulkInsert(ctx, "fare_rules", columns, len(fareRules), false, func(i int) []interface{} {
		fr := fareRules[i]
		return []interface{}{fr.FareID, fr.RouteID, fr.OriginID, fr.DestinationID, fr.ContainsID}
	})
}

func (db *DB) InsertShapes(ctx context.Context, shapes []gtfsjp.Shape) error {
	columns := []string{"shape_id", "shape_pt_lat", "shape_pt_lon", "shape_pt_sequence", "shape_dist_traveled"}

	return db.bulkInsert(ctx, "shapes", columns, len(shapes), false, func(i int) []interface{} {
		s := shapes[i]
		return []interface{}{s.ID, s.PointLatitude, s.PointLongitude, s.PointSequence, s.DistanceTraveled}
	})
}

func (db *DB) InsertFrequencies(ctx context.Context, frequencies []gtfsjp.Frequency) error {
	columns := []string{"trip_id", "start_time", "end_time", "headway_secs", "exact_times"}

	return db.bulkInsert(ctx, "frequencies", columns, len(frequencies), false, func(i int) []interface{} {
		f := frequencies[i]
		return []interface{}{f.TripID, f.StartTime, f.EndTime, f.HeadwaySeconds, f.ExactTimes}
	})
}

func (db *DB) InsertTransfers(ctx context.Context, transfers []gtfsjp.Transfer) error {
	columns := []string{"from_stop_id", "to_stop_id", "transfer_type", "min_transfer_time"}

	return db.bulkInsert(ctx, "transfers", columns, len(transfers), false, func(i int) []interface{} {
		t := transfers[i]
		return []interface{}{t.FromStopID, t.ToStopID, t.TransferType, t.MinTransferTime}
	})
}

func (db *DB) InsertFeedInfos(ctx context.Context, feedInfos []gtfsjp.FeedInfo) error {
	columns := []string{"feed_publisher_name", "feed_publisher_url", "feed_lang", "feed_start_date", "feed_end_date", "feed_version"}

	return db.bulkInsert(ctx, "feed_info", columns, len(feedInfos), false, func(i int) []interface{} {
		fi := feedInfos[i]
		return []interface{}{fi.PublisherName, fi.PublisherURL, fi.Language, fi.StartDate, fi.EndDate, fi.Version}
	})
}

func (db *DB) InsertTranslations(ctx context.Context, translations []gtfsjp.Translation) error {
	columns := []string{"table_name", "field_name", "language", "translation", "record_id", "record_sub_id", "field_value"}

	return db.bulkInsert(ctx, "translations", columns, len(translations), false, func(i int) []interface{} {
		t := translations[i]
		return []interface{}{t.TableName, t.FieldName, t.Language, t.Translation, t.RecordID, t.RecordSubID, t.FieldValue}
	})
}

func (db *DB) InsertTranslationsLegacy(ctx context.Context, translations []gtfsjp.TranslationLegacy) error {
	columns := []string{"trans_id", "lang", "translation"}

	return db.bulkInsert(ctx, "translations", columns, len(translations), false, func(i int) []interface{} {
		t := translations[i]
		return []interface{}{t.TransID, t.Language, t.Translation}
	})
}

func (db *DB) InsertServiceRoutes(ctx context.Context, routes []serviceroutes.ServiceRoute) error {
	columns := []string{"service_route_id", "direction_id", "service_route_name"}

	return db.bulkInsert(ctx, "service_routes", columns, len(routes), true, func(i int) []interface{} {
		sr := routes[i]
		return []interface{}{sr.ID, sr.DirectionID, sr.Name}
	})
}

func (db *DB) InsertTripServiceRoutes(ctx context.Context, assignments []serviceroutes.TripServiceRoute) error {
	columns := []string{"trip_id", "service_route_id", "service_route_direction_id"}

	return db.bulkInsert(ctx, "trips_to_service_routes", columns, len(assignments), true, func(i int) []interface{} {
		tsr := assignments[i]
		return []interface{}{tsr.TripID, tsr.ID, tsr.DirectionID}
	})
}

func (db *DB) InsertNodes(ctx context.Context, nodeRows []nodes.Node) error {
	columns := []string{"node_id", "node_name", "node_ruby"}

	return db.bulkInsert(ctx, "nodes", columns, len(nodeRows), true, func(i int) []interface{} {
		n := nodeRows[i]
		return []interface{}{n.ID, n.Name, n.Ruby}
	})
}
