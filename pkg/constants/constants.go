// Package constants provides shared constants used throughout the railmap codebase.
// This includes file permissions, default file names and the display-color
// parameters that must stay consistent between the library and the CLI.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Bundle file names written by the output formatter
const (
	// FeaturesFile holds the station point FeatureCollection
	FeaturesFile = "features.json"

	// RoutesFile holds the line LineString FeatureCollection
	RoutesFile = "routes.json"

	// LinesFile holds per-line display metadata
	LinesFile = "lines.json"

	// ManifestFile lists the bundle files with their checksums
	ManifestFile = "manifest.json"
)

// Project defaults
const (
	// DefaultProjectFile is the project file looked up when none is given
	DefaultProjectFile = "railmap.yaml"

	// DefaultOutputDir is the bundle directory used when none is configured
	DefaultOutputDir = "dist"

	// DefaultAgency is recorded for stations whose source names no agency
	DefaultAgency = "Unknown"

	// ManualAgency is recorded for hand-entered coordinates
	ManualAgency = "Manual"

	// StationSuffix is appended by sources that synthesize "<name> Station" variants
	StationSuffix = "Station"
)

// Display color constants
const (
	// BackgroundDarkenFactor scales line colors to derive a background color
	BackgroundDarkenFactor = 0.55

	// LuminanceThreshold selects black text above and white text at or below it
	LuminanceThreshold = 0.5

	// DarkText is used on light backgrounds
	DarkText = "#000000"

	// LightText is used on dark backgrounds
	LightText = "#FFFFFF"
)
