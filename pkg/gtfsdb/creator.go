// Package gtfsdb builds and queries the hibou database. It drives the CSV
// load and the derivation of service routes and nodes against one SQLite
// file.
package gtfsdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"

	"github.com/tadashi-aikawa/hibou/pkg/database"
	"github.com/tadashi-aikawa/hibou/pkg/extended/nodes"
	"github.com/tadashi-aikawa/hibou/pkg/extended/serviceroutes"
	"github.com/tadashi-aikawa/hibou/pkg/gtfsjp"
)

type CreateOptions struct {
	GTFSDirectory      string
	Database           string
	Strategy           serviceroutes.Strategy
	IdentityTable      string
	LegacyTranslations bool
}

// Create materializes a GTFS-JP feed directory as a fresh SQLite database,
// derived tables included. The target database is dropped and rebuilt from
// scratch, so a failed run leaves reproducible state behind.
func Create(ctx context.Context, opts CreateOptions) error {
	// The identity table is validated before anything touches the database
	var identity *serviceroutes.IdentityIndex
	if opts.Strategy == serviceroutes.StrategyIdentityTable {
		var err error
		identity, err = serviceroutes.LoadIdentityIndex(opts.IdentityTable)
		if err != nil {
			return err
		}
	}

	generator, err := serviceroutes.NewGenerator(opts.Strategy, identity)
	if err != nil {
		return err
	}

	feed := &gtfsjp.Feed{}
	if err := feed.LoadDirectory(opts.GTFSDirectory, opts.LegacyTranslations); err != nil {
		return fmt.Errorf("failed to load GTFS feed: %w", err)
	}

	db, err := database.Connect(opts.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DropAll(ctx); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	if err := db.CreateAll(ctx, opts.LegacyTranslations); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := loadFeed(ctx, db, feed, opts.LegacyTranslations); err != nil {
		return err
	}

	if err := deriveServiceRoutes(ctx, db, generator); err != nil {
		return fmt.Errorf("failed to derive service routes: %w", err)
	}
	if err := deriveNodes(ctx, db, opts.LegacyTranslations); err != nil {
		return fmt.Errorf("failed to derive nodes: %w", err)
	}

	log.Info().Msg("✨ Success")

	return nil
}

func loadFeed(ctx context.Context, db *database.DB, feed *gtfsjp.Feed, legacyTranslations bool) error {
	insertTranslations := func() error { return db.InsertTranslations(ctx, feed.Translations) }
	translationCount := len(feed.Translations)
	if legacyTranslations {
		insertTranslations = func() error { return db.InsertTranslationsLegacy(ctx, feed.TranslationsLegacy) }
		translationCount = len(feed.TranslationsLegacy)
	}

	loads := []struct {
		table  string
		count  int
		insert func() error
	}{
		{"agency", len(feed.Agencies), func() error { return db.InsertAgencies(ctx, feed.Agencies) }},
		{"agency_jp", len(feed.AgenciesJP), func() error { return db.InsertAgenciesJP(ctx, feed.AgenciesJP) }},
		{"stops", len(feed.Stops), func() error { return db.InsertStops(ctx, feed.Stops) }},
		{"routes", len(feed.Routes), func() error { return db.InsertRoutes(ctx, feed.Routes) }},
		{"routes_jp", len(feed.RoutesJP), func() error { return db.InsertRoutesJP(ctx, feed.RoutesJP) }},
		{"office_jp", len(feed.Offices), func() error { return db.InsertOffices(ctx, feed.Offices) }},
		{"trips", len(feed.Trips), func() error { return db.InsertTrips(ctx, feed.Trips) }},
		{"stop_times", len(feed.StopTimes), func() error { return db.InsertStopTimes(ctx, feed.StopTimes) }},
		{"calendar", len(feed.Calendars), func() error { return db.InsertCalendars(ctx, feed.Calendars) }},
		{"calendar_dates", len(feed.CalendarDates), func() error { return db.InsertCalendarDates(ctx, feed.CalendarDates) }},
		{"fare_attributes", len(feed.FareAttributes), func() error { return db.InsertFareAttributes(ctx, feed.FareAttributes) }},
		{"fare_rules", len(feed.FareRules), func() error { return db.InsertFareRules(ctx, feed.FareRules) }},
		{"shapes", len(feed.Shapes), func() error { return db.InsertShapes(ctx, feed.Shapes) }},
		{"frequencies", len(feed.Frequencies), func() error { return db.InsertFrequencies(ctx, feed.Frequencies) }},
		{"transfers", len(feed.Transfers), func() error { return db.InsertTransfers(ctx, feed.Transfers) }},
		{"feed_info", len(feed.FeedInfos), func() error { return db.InsertFeedInfos(ctx, feed.FeedInfos) }},
		{"translations", translationCount, insertTranslations},
	}

	for _, load := range loads {
		if err := load.insert(); err != nil {
			return fmt.Errorf("failed to load %s: %w", load.table, err)
		}

		log.Info().Msgf("[%s] %d records", load.table, load.count)
	}

	return nil
}

// deriveServiceRoutes groups stop time details by trip, feeds the trips to
// the generator in ascending trip_id order, and stores the assignments and
// the distinct routes. Everything is sorted by primary key before insertion
// so rerunning over the same feed writes byte-identical tables.
func deriveServiceRoutes(ctx context.Context, db *database.DB, generator *serviceroutes.Generator) error {
	details, err := db.SelectStopTimeDetails(ctx, "", "")
	if err != nil {
		return err
	}

	detailsByTrip := map[string][]gtfsjp.StopTimeDetail{}
	for _, detail := range details {
		detailsByTrip[detail.TripID] = append(detailsByTrip[detail.TripID], detail)
	}

	tripIDs := maps.Keys(detailsByTrip)
	sort.Strings(tripIDs)

	assignments := make([]serviceroutes.TripServiceRoute, 0, len(tripIDs))
	for _, tripID := range tripIDs {
		route, err := generator.Generate(tripID, detailsByTrip[tripID])
		if err != nil {
			return err
		}

		assignments = append(assignments, serviceroutes.TripServiceRoute{
			TripID:      tripID,
			ID:          route.ID,
			DirectionID: route.DirectionID,
		})
	}

	routes := generator.All()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].ID < routes[j].ID
	})

	if err := db.InsertServiceRoutes(ctx, routes); err != nil {
		return err
	}
	log.Info().Msgf("[service_routes] %d records", len(routes))

	if err := db.InsertTripServiceRoutes(ctx, assignments); err != nil {
		return err
	}
	log.Info().Msgf("[trips_to_service_routes] %d records", len(assignments))

	return nil
}

func deriveNodes(ctx context.Context, db *database.DB, legacyTranslations bool) error {
	details, err := db.SelectStopDetails(ctx, legacyTranslations)
	if err != nil {
		return err
	}

	nodeRows := nodes.Generate(details)

	if err := db.InsertNodes(ctx, nodeRows); err != nil {
		return err
	}
	log.Info().Msgf("[nodes] %d records", len(nodeRows))

	return nil
}
