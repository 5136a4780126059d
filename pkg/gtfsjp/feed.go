// Package gtfsjp reads GTFS-JP feeds, one comma separated file per table.
package gtfsjp

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"

	"github.com/tadashi-aikawa/hibou/pkg/util"
)

// Feed is an in-memory GTFS-JP feed, one slice per source file. Slices for
// files absent from the feed directory stay empty.
type Feed struct {
	Agencies           []Agency
	AgenciesJP         []AgencyJP
	Stops              []Stop
	Routes             []Route
	RoutesJP           []RouteJP
	Offices            []OfficeJP
	Trips              []Trip
	StopTimes          []StopTime
	Calendars          []Calendar
	CalendarDates      []CalendarDate
	FareAttributes     []FareAttribute
	FareRules          []FareRule
	Shapes             []Shape
	Frequencies        []Frequency
	Transfers          []Transfer
	FeedInfos          []FeedInfo
	Translations       []Translation
	TranslationsLegacy []TranslationLegacy
}

// LoadDirectory parses every recognised GTFS-JP file under dir into the feed.
// Files the GTFS-JP profile marks required must be present; the rest are
// skipped when absent. With legacyTranslations set, translations.txt is read
// in the pre-v3 trans_id/lang shape instead.
func (feed *Feed) LoadDirectory(dir string, legacyTranslations bool) error {
	// Allow ragged optional columns and the Excel byte order mark, both
	// common in published GTFS-JP feeds
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(util.SkipBOM(in))
		r.FieldsPerRecord = -1
		return r
	})

	translations := interface{}(&feed.Translations)
	if legacyTranslations {
		translations = &feed.TranslationsLegacy
	}

	files := []struct {
		name     string
		required bool
		into     interface{}
	}{
		{"agency.txt", true, &feed.Agencies},
		{"agency_jp.txt", false, &feed.AgenciesJP},
		{"stops.txt", true, &feed.Stops},
		{"routes.txt", true, &feed.Routes},
		{"routes_jp.txt", false, &feed.RoutesJP},
		{"office_jp.txt", false, &feed.Offices},
		{"trips.txt", true, &feed.Trips},
		{"stop_times.txt", true, &feed.StopTimes},
		{"calendar.txt", true, &feed.Calendars},
		{"calendar_dates.txt", false, &feed.CalendarDates},
		{"fare_attributes.txt", false, &feed.FareAttributes},
		{"fare_rules.txt", false, &feed.FareRules},
		{"shapes.txt", false, &feed.Shapes},
		{"frequencies.txt", false, &feed.Frequencies},
		{"transfers.txt", false, &feed.Transfers},
		{"feed_info.txt", true, &feed.FeedInfos},
		{"translations.txt", false, translations},
	}

	for _, feedFile := range files {
		file, err := os.Open(filepath.Join(dir, feedFile.name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && !feedFile.required {
				log.Debug().Str("file", feedFile.name).Msg("File not in feed, skipping")
				continue
			}

			return fmt.Errorf("failed to open %s: %w", feedFile.name, err)
		}

		log.Debug().Str("file", feedFile.name).Msg("Loading file")

		err = gocsv.UnmarshalFile(file, feedFile.into)
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", feedFile.name, err)
		}
	}

	return nil
}
