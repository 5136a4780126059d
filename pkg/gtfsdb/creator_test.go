package gtfsdb_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadashi-aikawa/hibou/pkg/database"
	"github.com/tadashi-aikawa/hibou/pkg/extended/serviceroutes"
	"github.com/tadashi-aikawa/hibou/pkg/gtfsdb"
)

func writeFiles(t *testing.T, dir string, files map[string][]string) {
	t.Helper()

	for name, lines := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0644))
	}
}

// branchFeed is one route serving A-B-C, a branch to D, and a return
// working over the branch.
func branchFeed() map[string][]string {
	return map[string][]string{
		"agency.txt": {
			"agency_id,agency_name,agency_url,agency_timezone,agency_lang",
			"A1,Hibou Bus,https://example.com,Asia/Tokyo,ja",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"SA,A,35.0,139.0,",
			"SB,B,35.1,139.1,",
			"SC,C,35.2,139.2,",
			"SD,D,35.3,139.3,",
		},
		"routes.txt": {
			"route_id,agency_id,route_long_name,route_type",
			"R1,A1,Loop,3",
		},
		"trips.txt": {
			"route_id,service_id,trip_id",
			"R1,C1,T1",
			"R1,C1,T2",
			"R1,C1,T3",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			"T1,08:00:00,08:00:00,SA,1",
			"T1,08:05:00,08:05:00,SB,2",
			"T1,08:10:00,08:10:00,SC,3",
			"T2,09:00:00,09:00:00,SA,1",
			"T2,09:05:00,09:05:00,SB,2",
			"T2,09:10:00,09:10:00,SD,3",
			"T3,10:00:00,10:00:00,SD,1",
			"T3,10:05:00,10:05:00,SB,2",
			"T3,10:10:00,10:10:00,SA,3",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"C1,1,1,1,1,1,0,0,20260401,20270331",
		},
		"feed_info.txt": {
			"feed_publisher_name,feed_publisher_url,feed_lang",
			"Hibou,https://example.com,ja",
		},
	}
}

func openCreated(t *testing.T, path string) *database.DB {
	t.Helper()

	db, err := database.Connect(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestCreateStopNames(t *testing.T) {
	ctx := context.Background()
	feedDir := t.TempDir()
	writeFiles(t, feedDir, branchFeed())
	dbPath := filepath.Join(t.TempDir(), "gtfs.db")

	require.NoError(t, gtfsdb.Create(ctx, gtfsdb.CreateOptions{
		GTFSDirectory: feedDir,
		Database:      dbPath,
		Strategy:      serviceroutes.StrategyStopNames,
	}))

	db := openCreated(t, dbPath)

	routes, err := db.SelectServiceRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []serviceroutes.ServiceRoute{
		{ID: 1, DirectionID: 0, Name: "A - C"},
		{ID: 2, DirectionID: 0, Name: "A - D"},
	}, routes)

	assignments, err := db.SelectTripServiceRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []serviceroutes.TripServiceRoute{
		{TripID: "T1", ID: 1, DirectionID: 0},
		{TripID: "T2", ID: 2, DirectionID: 0},
		{TripID: "T3", ID: 2, DirectionID: 1},
	}, assignments)

	stops, err := db.SelectStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 4)
}

func TestCreateDerivesNodes(t *testing.T) {
	ctx := context.Background()
	feedDir := t.TempDir()
	files := branchFeed()
	files["stops.txt"] = []string{
		"stop_id,stop_name,stop_lat,stop_lon,parent_station",
		"SA,Shibuya Platform 1,35.0,139.0,SB",
		"SB,Shibuya,35.0,139.0,",
		"SC,Shinjuku,35.1,139.1,",
		"SD,Yoyogi,35.2,139.2,",
	}
	files["translations.txt"] = []string{
		"table_name,field_name,language,translation,record_id,record_sub_id,field_value",
		"stops,stop_name,ja-Hrkt,しぶや,SB,,",
		"stops,stop_name,ja-Hrkt,しんじゅく,,,Shinjuku",
	}
	writeFiles(t, feedDir, files)
	dbPath := filepath.Join(t.TempDir(), "gtfs.db")

	require.NoError(t, gtfsdb.Create(ctx, gtfsdb.CreateOptions{
		GTFSDirectory: feedDir,
		Database:      dbPath,
		Strategy:      serviceroutes.StrategyStopNames,
	}))

	db := openCreated(t, dbPath)

	nodeRows, err := db.SelectNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodeRows, 3)

	// The platform under SB is gone; ids are dense over what remains
	assert.Equal(t, 1, nodeRows[0].ID)
	assert.Equal(t, "Shibuya", nodeRows[0].Name)
	require.NotNil(t, nodeRows[0].Ruby)
	assert.Equal(t, "しぶや", *nodeRows[0].Ruby)

	assert.Equal(t, 2, nodeRows[1].ID)
	assert.Equal(t, "Shinjuku", nodeRows[1].Name)
	require.NotNil(t, nodeRows[1].Ruby)

	assert.Equal(t, 3, nodeRows[2].ID)
	assert.Equal(t, "Yoyogi", nodeRows[2].Name)
	assert.Nil(t, nodeRows[2].Ruby)
}

func TestCreateLegacyTranslations(t *testing.T) {
	ctx := context.Background()
	feedDir := t.TempDir()
	files := branchFeed()
	files["translations.txt"] = []string{
		"trans_id,lang,translation",
		"A,ja-Hrkt,えー",
	}
	writeFiles(t, feedDir, files)
	dbPath := filepath.Join(t.TempDir(), "gtfs.db")

	require.NoError(t, gtfsdb.Create(ctx, gtfsdb.CreateOptions{
		GTFSDirectory:      feedDir,
		Database:           dbPath,
		Strategy:           serviceroutes.StrategyStopNames,
		LegacyTranslations: true,
	}))

	db := openCreated(t, dbPath)

	nodeRows, err := db.SelectNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodeRows, 4)
	require.NotNil(t, nodeRows[0].Ruby)
	assert.Equal(t, "えー", *nodeRows[0].Ruby)
	assert.Nil(t, nodeRows[1].Ruby)
}

func TestCreateIdentityTable(t *testing.T) {
	ctx := context.Background()
	feedDir := t.TempDir()
	writeFiles(t, feedDir, branchFeed())

	identityPath := filepath.Join(t.TempDir(), "identity.csv")
	identity := strings.Join([]string{
		"stop_pattern,direction_id,service_route_id,service_route_name",
		`"A,B,C",0,42,Main Line`,
		`"A,B,D",0,43,Branch Line`,
		`"D,B,A",1,43,Branch Line`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(identityPath, []byte(identity), 0644))

	dbPath := filepath.Join(t.TempDir(), "gtfs.db")

	require.NoError(t, gtfsdb.Create(ctx, gtfsdb.CreateOptions{
		GTFSDirectory: feedDir,
		Database:      dbPath,
		Strategy:      serviceroutes.StrategyIdentityTable,
		IdentityTable: identityPath,
	}))

	db := openCreated(t, dbPath)

	routes, err := db.SelectServiceRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []serviceroutes.ServiceRoute{
		{ID: 42, DirectionID: 0, Name: "Main Line"},
		{ID: 43, DirectionID: 0, Name: "Branch Line"},
	}, routes)

	assignments, err := db.SelectTripServiceRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []serviceroutes.TripServiceRoute{
		{TripID: "T1", ID: 42, DirectionID: 0},
		{TripID: "T2", ID: 43, DirectionID: 0},
		{TripID: "T3", ID: 43, DirectionID: 1},
	}, assignments)
}

func TestCreateIdentityTableMiss(t *testing.T) {
	ctx := context.Background()
	feedDir := t.TempDir()
	writeFiles(t, feedDir, branchFeed())

	// The branch pattern A,B,D is missing from the table
	identityPath := filepath.Join(t.TempDir(), "identity.csv")
	identity := strings.Join([]string{
		"stop_pattern,direction_id,service_route_id,service_route_name",
		`"A,B,C",0,42,Main Line`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(identityPath, []byte(identity), 0644))

	dbPath := filepath.Join(t.TempDir(), "gtfs.db")

	err := gtfsdb.Create(ctx, gtfsdb.CreateOptions{
		GTFSDirectory: feedDir,
		Database:      dbPath,
		Strategy:      serviceroutes.StrategyIdentityTable,
		IdentityTable: identityPath,
	})
	require.Error(t, err)

	var unknown *serviceroutes.UnknownServiceRouteError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "T2", unknown.TripID)

	// The run aborted before any derived row was written
	db := openCreated(t, dbPath)

	routes, err := db.SelectServiceRoutes(ctx)
	require.NoError(t, err)
	assert.Empty(t, routes)

	assignments, err := db.SelectTripServiceRoutes(ctx)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestCreateMalformedIdentityTable(t *testing.T) {
	ctx := context.Background()
	feedDir := t.TempDir()
	writeFiles(t, feedDir, branchFeed())

	identityPath := filepath.Join(t.TempDir(), "identity.csv")
	identity := strings.Join([]string{
		"stop_pattern,direction_id,service_route_id,service_route_name",
		`"A,B,C",9,42,Main Line`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(identityPath, []byte(identity), 0644))

	dbPath := filepath.Join(t.TempDir(), "gtfs.db")

	err := gtfsdb.Create(ctx, gtfsdb.CreateOptions{
		GTFSDirectory: feedDir,
		Database:      dbPath,
		Strategy:      serviceroutes.StrategyIdentityTable,
		IdentityTable: identityPath,
	})
	require.ErrorIs(t, err, serviceroutes.ErrMalformedIdentityTable)

	// Validation happens before the database is even opened
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateIsDeterministic(t *testing.T) {
	ctx := context.Background()
	feedDir := t.TempDir()
	writeFiles(t, feedDir, branchFeed())
	dbPath := filepath.Join(t.TempDir(), "gtfs.db")

	opts := gtfsdb.CreateOptions{
		GTFSDirectory: feedDir,
		Database:      dbPath,
		Strategy:      serviceroutes.StrategyStopNames,
	}

	derived := []string{"service-routes", "trips-to-service-routes", "nodes"}

	require.NoError(t, gtfsdb.Create(ctx, opts))
	first := map[string]string{}
	for _, table := range derived {
		first[table] = exportTable(t, ctx, dbPath, table)
	}

	require.NoError(t, gtfsdb.Create(ctx, opts))
	for _, table := range derived {
		assert.Equal(t, first[table], exportTable(t, ctx, dbPath, table), table)
	}
}

func exportTable(t *testing.T, ctx context.Context, dbPath string, table string) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, gtfsdb.Export(ctx, dbPath, table, gtfsdb.FormatCSV, &buf))

	return buf.String()
}

func TestExportFormats(t *testing.T) {
	ctx := context.Background()
	feedDir := t.TempDir()
	writeFiles(t, feedDir, branchFeed())
	dbPath := filepath.Join(t.TempDir(), "gtfs.db")

	require.NoError(t, gtfsdb.Create(ctx, gtfsdb.CreateOptions{
		GTFSDirectory: feedDir,
		Database:      dbPath,
		Strategy:      serviceroutes.StrategyStopNames,
	}))

	csv := exportTable(t, ctx, dbPath, "service-routes")
	assert.Equal(t, "service_route_id,direction_id,service_route_name\n1,0,A - C\n2,0,A - D\n", csv)

	var buf bytes.Buffer
	require.NoError(t, gtfsdb.Export(ctx, dbPath, "service-routes", gtfsdb.FormatJSON, &buf))
	assert.Contains(t, buf.String(), `"service_route_name": "A - C"`)

	for _, table := range gtfsdb.Tables() {
		buf.Reset()
		assert.NoError(t, gtfsdb.Export(ctx, dbPath, table, gtfsdb.FormatCSV, &buf), table)
	}

	assert.Error(t, gtfsdb.Export(ctx, dbPath, "fares", gtfsdb.FormatCSV, &buf))
	assert.Error(t, gtfsdb.Export(ctx, dbPath, "nodes", "xml", &buf))
}
