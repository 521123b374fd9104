package sources

// CoordinateMode selects where a GeoJSON source reads coordinates from.
type CoordinateMode string

// Coordinate modes.
const (
	// CoordinatesGeometry uses the Point geometry only.
	CoordinatesGeometry CoordinateMode = "geometry"
	// CoordinatesProperties uses the lon/lat property fields only.
	CoordinatesProperties CoordinateMode = "properties"
	// CoordinatesAuto uses the Point geometry when present, else properties.
	CoordinatesAuto CoordinateMode = "auto"
)

// Config describes one source in a project file.
type Config struct {
	ID   ID   `yaml:"id" json:"id" validate:"required"`
	Type Type `yaml:"type" json:"type" validate:"required,oneof=geojson gtfs manual"`

	// Path is the dataset file. Relative paths resolve against the project
	// file's directory.
	Path string `yaml:"path,omitempty" json:"path,omitempty" validate:"required_unless=Type manual"`

	// Agency, when set, is recorded for every row.
	Agency string `yaml:"agency,omitempty" json:"agency,omitempty"`

	// AgencyFields are property names tried in order when Agency is empty.
	AgencyFields []string `yaml:"agency_fields,omitempty" json:"agency_fields,omitempty"`

	// NameFields are property names tried in order for the station name.
	NameFields []string `yaml:"name_fields,omitempty" json:"name_fields,omitempty"`

	// Coordinates selects geometry or property coordinates. Default auto.
	Coordinates CoordinateMode `yaml:"coordinates,omitempty" json:"coordinates,omitempty" validate:"omitempty,oneof=geometry properties auto"`

	// LonFields and LatFields are property names tried in order for
	// property coordinates.
	LonFields []string `yaml:"lon_fields,omitempty" json:"lon_fields,omitempty"`
	LatFields []string `yaml:"lat_fields,omitempty" json:"lat_fields,omitempty"`

	// TitleCase rewrites names such as "POWER INN" to "Power Inn".
	TitleCase bool `yaml:"title_case,omitempty" json:"title_case,omitempty"`

	// StationSuffix also adds "<name> Station" for names not already ending
	// in "Station".
	StationSuffix bool `yaml:"station_suffix,omitempty" json:"station_suffix,omitempty"`

	// LocationTypes limits GTFS stops to these location_type values.
	// Empty accepts every stop.
	LocationTypes []int `yaml:"location_types,omitempty" json:"location_types,omitempty"`

	// Stations lists hand-entered coordinates for manual sources.
	Stations []ManualStation `yaml:"stations,omitempty" json:"stations,omitempty" validate:"required_if=Type manual,dive"`
}

// ManualStation is one hand-entered station.
type ManualStation struct {
	Name   string   `yaml:"name" json:"name" validate:"required"`
	Lon    *float64 `yaml:"lon" json:"lon" validate:"required"`
	Lat    *float64 `yaml:"lat" json:"lat" validate:"required"`
	Agency string   `yaml:"agency,omitempty" json:"agency,omitempty"`
}

// Mode returns the configured coordinate mode, defaulting to auto.
func (c Config) Mode() CoordinateMode {
	if c.Coordinates == "" {
		return CoordinatesAuto
	}
	return c.Coordinates
}
