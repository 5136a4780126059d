package gtfsjp

// StopTimeDetail is a single stop call of a trip joined with the stop it
// calls at, ordered by (trip_id, stop_sequence) when read from the database.
type StopTimeDetail struct {
	TripID       string `json:"trip_id"`
	StopSequence int    `json:"stop_sequence"`
	StopID       string `json:"stop_id"`
	StopName     string `json:"stop_name"`
	StopHeadsign string `json:"stop_headsign"`
}

// StopDetail is a stop joined with its ja-Hrkt reading from translations.
// StopRuby is nil when the feed carries no reading for the stop name.
type StopDetail struct {
	StopID        string  `json:"stop_id"`
	StopName      string  `json:"stop_name"`
	StopRuby      *string `json:"stop_ruby"`
	ParentStation string  `json:"parent_station"`
}

// IsTopLevel reports whether the stop is a parent (or standalone) stop
// rather than a platform belonging to one.
func (d *StopDetail) IsTopLevel() bool {
	return d.ParentStation == ""
}
