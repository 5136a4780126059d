package gtfsjp_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadashi-aikawa/hibou/pkg/gtfsjp"
)

func writeFeed(t *testing.T, files map[string][]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, lines := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0644))
	}

	return dir
}

func minimalFeed() map[string][]string {
	return map[string][]string{
		"agency.txt": {
			"agency_id,agency_name,agency_url,agency_timezone,agency_lang",
			"A1,Hibou Bus,https://example.com,Asia/Tokyo,ja",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"S1,Shibuya,35.658,139.701,",
			"S2,Shinjuku,35.690,139.700,",
		},
		"routes.txt": {
			"route_id,agency_id,route_long_name,route_type",
			"R1,A1,Loop,3",
		},
		"trips.txt": {
			"route_id,service_id,trip_id,direction_id",
			"R1,C1,T1,",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence,timepoint",
			"T1,08:00:00,08:00:00,S1,1,1",
			"T1,08:10:00,08:10:00,S2,2,",
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

func TestLoadDirectory(t *testing.T) {
	dir := writeFeed(t, minimalFeed())

	feed := &gtfsjp.Feed{}
	require.NoError(t, feed.LoadDirectory(dir, false))

	require.Len(t, feed.Agencies, 1)
	assert.Equal(t, "Hibou Bus", feed.Agencies[0].Name)

	require.Len(t, feed.Stops, 2)
	assert.Equal(t, 35.658, feed.Stops[0].Latitude)

	require.Len(t, feed.Trips, 1)
	assert.Nil(t, feed.Trips[0].DirectionID)

	require.Len(t, feed.StopTimes, 2)
	require.NotNil(t, feed.StopTimes[0].Timepoint)
	assert.Equal(t, int8(1), *feed.StopTimes[0].Timepoint)
	assert.Nil(t, feed.StopTimes[1].Timepoint)

	// Files absent from the directory leave their slices empty
	assert.Empty(t, feed.Shapes)
	assert.Empty(t, feed.Translations)
}

func TestLoadDirectoryMissingRequiredFile(t *testing.T) {
	files := minimalFeed()
	delete(files, "stop_times.txt")
	dir := writeFeed(t, files)

	feed := &gtfsjp.Feed{}
	err := feed.LoadDirectory(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop_times.txt")
}

func TestLoadDirectorySkipsByteOrderMark(t *testing.T) {
	files := minimalFeed()
	files["stops.txt"][0] = "\xEF\xBB\xBF" + files["stops.txt"][0]
	dir := writeFeed(t, files)

	feed := &gtfsjp.Feed{}
	require.NoError(t, feed.LoadDirectory(dir, false))

	require.Len(t, feed.Stops, 2)
	assert.Equal(t, "S1", feed.Stops[0].ID)
}

func TestLoadDirectoryRaggedColumns(t *testing.T) {
	files := minimalFeed()
	// Optional trailing columns omitted on one row only
	files["stops.txt"] = []string{
		"stop_id,stop_name,stop_lat,stop_lon,parent_station,platform_code",
		"S1,Shibuya,35.658,139.701,,1",
		"S2,Shinjuku,35.690,139.700",
	}
	dir := writeFeed(t, files)

	feed := &gtfsjp.Feed{}
	require.NoError(t, feed.LoadDirectory(dir, false))

	require.Len(t, feed.Stops, 2)
	assert.Equal(t, "1", feed.Stops[0].PlatformCode)
	assert.Equal(t, "", feed.Stops[1].PlatformCode)
}

func TestLoadDirectoryTranslations(t *testing.T) {
	files := minimalFeed()
	files["translations.txt"] = []string{
		"table_name,field_name,language,translation,record_id,record_sub_id,field_value",
		"stops,stop_name,ja-Hrkt,しぶや,S1,,",
	}
	dir := writeFeed(t, files)

	feed := &gtfsjp.Feed{}
	require.NoError(t, feed.LoadDirectory(dir, false))

	require.Len(t, feed.Translations, 1)
	assert.Equal(t, "しぶや", feed.Translations[0].Translation)
	assert.Empty(t, feed.TranslationsLegacy)
}

func TestLoadDirectoryLegacyTranslations(t *testing.T) {
	files := minimalFeed()
	files["translations.txt"] = []string{
		"trans_id,lang,translation",
		"Shibuya,ja-Hrkt,しぶや",
	}
	dir := writeFeed(t, files)

	feed := &gtfsjp.Feed{}
	require.NoError(t, feed.LoadDirectory(dir, true))

	require.Len(t, feed.TranslationsLegacy, 1)
	assert.Equal(t, "Shibuya", feed.TranslationsLegacy[0].TransID)
	assert.Empty(t, feed.Translations)
}
