package database

import (
	"context"
	"fmt"
)

type tableDefinition struct {
	name    string
	columns string
}

// tableDefinitions lists every table in creation order. The translations
// definition carries either the GTFS-JP v3 shape or the pre-v3 one.
func tableDefinitions(legacyTranslations bool) []tableDefinition {
	translations := tableDefinition{
		name: "translations",
		columns: `
		table_name text not null,
		field_name text not null,
		language text not null,
		translation text not null,
		record_id text,
		record_sub_id text,
		field_value text`,
	}
	if legacyTranslations {
		translations = tableDefinition{
			name: "translations",
			columns: `
		trans_id text not null,
		lang text not null,
		translation text not null,
		primary key (trans_id, lang)`,
		}
	}

	return []tableDefinition{
		{
			name: "agency",
			columns: `
		agency_id text primary key,
		agency_name text not null,
		agency_url text not null,
		agency_timezone text not null,
		agency_lang text,
		agency_phone text,
		agency_fare_url text,
		agency_email text`,
		},
		{
			name: "agency_jp",
			columns: `
		agency_id text primary key,
		agency_official_name text,
		agency_zip_number text,
		agency_address text,
		agency_president_pos text,
		agency_president_name text`,
		},
		{
			name: "stops",
			columns: `
		stop_id text primary key,
		stop_code text,
		stop_name text not null,
		stop_desc text,
		stop_lat real not null,
		stop_lon real not null,
		zone_id text,
		stop_url text,
		location_type integer,
		parent_station text,
		stop_timezone text,
		wheelchair_boarding integer,
		platform_code text`,
		},
		{
			name: "routes",
			columns: `
		route_id text primary key,
		agency_id text not null,
		route_short_name text,
		route_long_name text,
		route_desc text,
		route_type integer not null,
		route_url text,
		route_color text,
		route_text_color text,
		jp_parent_route_id text`,
		},
		{
			name: "routes_jp",
			columns: `
		route_id text primary key,
		route_update_date text,
		origin_stop text,
		via_stop text,
		destination_stop text`,
		},
		{
			name: "office_jp",
			columns: `
		office_id text primary key,
		office_name text not null,
		office_url text,
		office_phone text`,
		},
		{
			name: "trips",
			columns: `
		route_id text not null,
		service_id text not null,
		trip_id text primary key,
		trip_headsign text,
		trip_short_name text,
		direction_id integer,
		block_id text,
		shape_id text,
		wheelchair_accessible integer,
		bikes_allowed integer,
		jp_trip_desc text,
		jp_trip_desc_symbol text,
		jp_office_id text`,
		},
		{
			name: "stop_times",
			columns: `
		trip_id text not null,
		arrival_time text not null,
		departure_time text not null,
		stop_id text not null,
		stop_sequence integer not null,
		stop_headsign text,
		pickup_type integer,
		drop_off_type integer,
		shape_dist_traveled real,
		timepoint integer,
		primary key (trip_id, stop_sequence)`,
		},
		{
			name: "calendar",
			columns: `
		service_id text primary key,
		monday integer not null,
		tuesday integer not null,
		wednesday integer not null,
		thursday integer not null,
		friday integer not null,
		saturday integer not null,
		sunday integer not null,
		start_date text not null,
		end_date text not null`,
		},
		{
			name: "calendar_dates",
			columns: `
		service_id text not null,
		date text not null,
		exception_type integer not null,
		primary key (service_id, date)`,
		},
		{
			name: "fare_attributes",
			columns: `
		fare_id text primary key,
		price real not null,
		currency_type text not null,
		payment_method integer not null,
		transfers integer,
		agency_id text,
		transfer_duration integer`,
		},
		{
			name: "fare_rules",
			columns: `
		fare_id text not null,
		route_id text,
		origin_id text,
		destination_id text,
		contains_id text`,
		},
		{
			name: "shapes",
			columns: `
		shape_id text not null,
		shape_pt_lat real not null,
		shape_pt_lon real not null,
		shape_pt_sequence integer not null,
		shape_dist_traveled real,
		primary key (shape_id, shape_pt_sequence)`,
		},
		{
			name: "frequencies",
			columns: `
		trip_id text not null,
		start_time text not null,
		end_time text not null,
		headway_secs integer not null,
		exact_times integer,
		primary key (trip_id, start_time)`,
		},
		{
			name: "transfers",
			columns: `
		from_stop_id text not null,
		to_stop_id text not null,
		transfer_type integer not null,
		min_transfer_time integer,
		primary key (from_stop_id, to_stop_id)`,
		},
		{
			name: "feed_info",
			columns: `
		feed_publisher_name text primary key,
		feed_publisher_url text not null,
		feed_lang text not null,
		feed_start_date text,
		feed_end_date text,
		feed_version text`,
		},
		translations,
		{
			name: "service_routes",
			columns: `
		service_route_id integer primary key,
		direction_id integer not null,
		service_route_name text not null`,
		},
		{
			name: "trips_to_service_routes",
			columns: `
		trip_id text primary key,
		service_route_id integer not null,
		service_route_direction_id integer not null`,
		},
		{
			name: "nodes",
			columns: `
		node_id integer primary key,
		node_name text not null,
		node_ruby text`,
		},
	}
}

var indexDefinitions = []string{
	"create index idx_stop_times_stop_id on stop_times (stop_id)",
	"create index idx_trips_route_id on trips (route_id)",
}

// CreateAll creates every table plus the lookup indexes the detail queries
// lean on. Call DropAll first when rebuilding.
func (db *DB) CreateAll(ctx context.Context, legacyTranslations bool) error {
	for _, table := range tableDefinitions(legacyTranslations) {
		ddl := fmt.Sprintf("create table %s (%s\n\t)", table.name, table.columns)
		if _, err := db.conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	for _, index := range indexDefinitions {
		if _, err := db.conn.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// DropAll removes every table the tool knows about, so a rebuild always
// starts from nothing.
func (db *DB) DropAll(ctx context.Context) error {
	for _, table := range tableDefinitions(false) {
		if _, err := db.conn.ExecContext(ctx, fmt.Sprintf("drop table if exists %s", table.name)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table.name, err)
		}
	}

	return nil
}
