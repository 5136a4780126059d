package gtfsjp

type Agency struct {
	ID       string `csv:"agency_id" json:"agency_id"`
	Name     string `csv:"agency_name" json:"agency_name"`
	URL      string `csv:"agency_url" json:"agency_url"`
	Timezone string `csv:"agency_timezone" json:"agency_timezone"`
	Language string `csv:"agency_lang" json:"agency_lang"`
	Phone    string `csv:"agency_phone" json:"agency_phone"`
	FareURL  string `csv:"agency_fare_url" json:"agency_fare_url"`
	Email    string `csv:"agency_email" json:"agency_email"`
}

type AgencyJP struct {
	AgencyID      string `csv:"agency_id" json:"agency_id"`
	OfficialName  string `csv:"agency_official_name" json:"agency_official_name"`
	ZipNumber     string `csv:"agency_zip_number" json:"agency_zip_number"`
	Address       string `csv:"agency_address" json:"agency_address"`
	PresidentPos  string `csv:"agency_president_pos" json:"agency_president_pos"`
	PresidentName string `csv:"agency_president_name" json:"agency_president_name"`
}

type Stop struct {
	ID            string  `csv:"stop_id" json:"stop_id"`
	Code          string  `csv:"stop_code" json:"stop_code"`
	Name          string  `csv:"stop_name" json:"stop_name"`
	Description   string  `csv:"stop_desc" json:"stop_desc"`
	Latitude      float64 `csv:"stop_lat" json:"stop_lat"`
	Longitude     float64 `csv:"stop_lon" json:"stop_lon"`
	ZoneID        string  `csv:"zone_id" json:"zone_id"`
	URL           string  `csv:"stop_url" json:"stop_url"`
	LocationType  int8    `csv:"location_type" json:"location_type"`
	ParentStation string  `csv:"parent_station" json:"parent_station"`
	Timezone      string  `csv:"stop_timezone" json:"stop_timezone"`
	Wheelchair    int8    `csv:"wheelchair_boarding" json:"wheelchair_boarding"`
	PlatformCode  string  `csv:"platform_code" json:"platform_code"`
}

type Route struct {
	ID          string `csv:"route_id" json:"route_id"`
	AgencyID    string `csv:"agency_id" json:"agency_id"`
	ShortName   string `csv:"route_short_name" json:"route_short_name"`
	LongName    string `csv:"route_long_name" json:"route_long_name"`
	Description string `csv:"route_desc" json:"route_desc"`
	Type        int    `csv:"route_type" json:"route_type"`
	URL         string `csv:"route_url" json:"route_url"`
	Colour      string `csv:"route_color" json:"route_color"`
	TextColour  string `csv:"route_text_color" json:"route_text_color"`

	ParentRouteID string `csv:"jp_parent_route_id" json:"jp_parent_route_id"` // GTFS-JP ONLY
}

type RouteJP struct {
	RouteID         string `csv:"route_id" json:"route_id"`
	UpdateDate      string `csv:"route_update_date" json:"route_update_date"`
	OriginStop      string `csv:"origin_stop" json:"origin_stop"`
	ViaStop         string `csv:"via_stop" json:"via_stop"`
	DestinationStop string `csv:"destination_stop" json:"destination_stop"`
}

type OfficeJP struct {
	ID    string `csv:"office_id" json:"office_id"`
	Name  string `csv:"office_name" json:"office_name"`
	URL   string `csv:"office_url" json:"office_url"`
	Phone string `csv:"office_phone" json:"office_phone"`
}

type Trip struct {
	RouteID              string `csv:"route_id" json:"route_id"`
	ServiceID            string `csv:"service_id" json:"service_id"`
	ID                   string `csv:"trip_id" json:"trip_id"`
	Headsign             string `csv:"trip_headsign" json:"trip_headsign"`
	ShortName            string `csv:"trip_short_name" json:"trip_short_name"`
	DirectionID          *int8  `csv:"direction_id" json:"direction_id"`
	BlockID              string `csv:"block_id" json:"block_id"`
	ShapeID              string `csv:"shape_id" json:"shape_id"`
	WheelchairAccessible int8   `csv:"wheelchair_accessible" json:"wheelchair_accessible"`
	BikesAllowed         int8   `csv:"bikes_allowed" json:"bikes_allowed"`

	Description       string `csv:"jp_trip_desc" json:"jp_trip_desc"`               // GTFS-JP ONLY
	DescriptionSymbol string `csv:"jp_trip_desc_symbol" json:"jp_trip_desc_symbol"` // GTFS-JP ONLY
	OfficeID          string `csv:"jp_office_id" json:"jp_office_id"`               // GTFS-JP ONLY
}

type StopTime struct {
	TripID            string   `csv:"trip_id" json:"trip_id"`
	ArrivalTime       string   `csv:"arrival_time" json:"arrival_time"`
	DepartureTime     string   `csv:"departure_time" json:"departure_time"`
	StopID            string   `csv:"stop_id" json:"stop_id"`
	StopSequence      int      `csv:"stop_sequence" json:"stop_sequence"`
	StopHeadsign      string   `csv:"stop_headsign" json:"stop_headsign"`
	PickupType        int8     `csv:"pickup_type" json:"pickup_type"`
	DropOffType       int8     `csv:"drop_off_type" json:"drop_off_type"`
	ShapeDistTraveled *float64 `csv:"shape_dist_traveled" json:"shape_dist_traveled"`
	Timepoint         *int8    `csv:"timepoint" json:"timepoint"`
}

type Calendar struct {
	ServiceID string `csv:"service_id" json:"service_id"`
	Monday    int8   `csv:"monday" json:"monday"`
	Tuesday   int8   `csv:"tuesday" json:"tuesday"`
	Wednesday int8   `csv:"wednesday" json:"wednesday"`
	Thursday  int8   `csv:"thursday" json:"thursday"`
	Friday    int8   `csv:"friday" json:"friday"`
	Saturday  int8   `csv:"saturday" json:"saturday"`
	Sunday    int8   `csv:"sunday" json:"sunday"`
	Start     string `csv:"start_date" json:"start_date"`
	End       string `csv:"end_date" json:"end_date"`
}

type CalendarDate struct {
	ServiceID     string `csv:"service_id" json:"service_id"`
	Date          string `csv:"date" json:"date"`
	ExceptionType int8   `csv:"exception_type" json:"exception_type"`
}

type FareAttribute struct {
	FareID           string  `csv:"fare_id" json:"fare_id"`
	Price            float64 `csv:"price" json:"price"`
	CurrencyType     string  `csv:"currency_type" json:"currency_type"`
	PaymentMethod    int8    `csv:"payment_method" json:"payment_method"`
	Transfers        *int8   `csv:"transfers" json:"transfers"`
	AgencyID         string  `csv:"agency_id" json:"agency_id"`
	TransferDuration *int    `csv:"transfer_duration" json:"transfer_duration"`
}

type FareRule struct {
	FareID        string `csv:"fare_id" json:"fare_id"`
	RouteID       string `csv:"route_id" json:"route_id"`
	OriginID      string `csv:"origin_id" json:"origin_id"`
	DestinationID string `csv:"destination_id" json:"destination_id"`
	ContainsID    string `csv:"contains_id" json:"contains_id"`
}

type Shape struct {
	ID               string   `csv:"shape_id" json:"shape_id"`
	PointLatitude    float64  `csv:"shape_pt_lat" json:"shape_pt_lat"`
	PointLongitude   float64  `csv:"shape_pt_lon" json:"shape_pt_lon"`
	PointSequence    int      `csv:"shape_pt_sequence" json:"shape_pt_sequence"`
	DistanceTraveled *float64 `csv:"shape_dist_traveled" json:"shape_dist_traveled"`
}

type Frequency struct {
	TripID         string `csv:"trip_id" json:"trip_id"`
	StartTime      string `csv:"start_time" json:"start_time"`
	EndTime        string `csv:"end_time" json:"end_time"`
	HeadwaySeconds int    `csv:"headway_secs" json:"headway_secs"`
	ExactTimes     int8   `csv:"exact_times" json:"exact_times"`
}

type Transfer struct {
	FromStopID      string `csv:"from_stop_id" json:"from_stop_id"`
	ToStopID        string `csv:"to_stop_id" json:"to_stop_id"`
	TransferType    int8   `csv:"transfer_type" json:"transfer_type"`
	MinTransferTime *int   `csv:"min_transfer_time" json:"min_transfer_time"`
}

type FeedInfo struct {
	PublisherName string `csv:"feed_publisher_name" json:"feed_publisher_name"`
	PublisherURL  string `csv:"feed_publisher_url" json:"feed_publisher_url"`
	Language      string `csv:"feed_lang" json:"feed_lang"`
	StartDate     string `csv:"feed_start_date" json:"feed_start_date"`
	EndDate       string `csv:"feed_end_date" json:"feed_end_date"`
	Version       string `csv:"feed_version" json:"feed_version"`
}

type Translation struct {
	TableName   string `csv:"table_name" json:"table_name"`
	FieldName   string `csv:"field_name" json:"field_name"`
	Language    string `csv:"language" json:"language"`
	Translation string `csv:"translation" json:"translation"`
	RecordID    string `csv:"record_id" json:"record_id"`
	RecordSubID string `csv:"record_sub_id" json:"record_sub_id"`
	FieldValue  string `csv:"field_value" json:"field_value"`
}

// TranslationLegacy is the pre-v3 GTFS-JP translations record, keyed by the
// source string itself rather than by table and field.
type TranslationLegacy struct {
	TransID     string `csv:"trans_id" json:"trans_id"`
	Language    string `csv:"lang" json:"lang"`
	Translation string `csv:"translation" json:"translation"`
}
