package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"math"

	"github.com/agentstation/railmap/pkg/assembler"
)

// Manifest lists the files of a bundle with their checksums, plus counts and
// the bounding box of all stations. It carries no timestamps so identical
// input produces an identical bundle.
type Manifest struct {
	Files    []ManifestFile `json:"files"`
	Stations int            `json:"stations"`
	Lines    int            `json:"lines"`
	Routes   int            `json:"routes"`
	Bounds   *Bounds        `json:"bounds,omitempty"`
}

// ManifestFile represents a file entry
type ManifestFile struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
	Size     int    `json:"size"`
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Center returns the midpoint of the box as [lon, lat].
func (b Bounds) Center() []float64 {
	return []float64{(b.MinLon + b.MaxLon) / 2, (b.MinLat + b.MaxLat) / 2}
}

// ComputeBounds returns the box around every feature, or nil when there are none.
func ComputeBounds(features []assembler.Feature) *Bounds {
	if len(features) == 0 {
		return nil
	}
	b := &Bounds{
		MinLon: math.Inf(1), MinLat: math.Inf(1),
		MaxLon: math.Inf(-1), MaxLat: math.Inf(-1),
	}
	for _, f := range features {
		b.MinLon = math.Min(b.MinLon, f.Coordinate.Lon)
		b.MinLat = math.Min(b.MinLat, f.Coordinate.Lat)
		b.MaxLon = math.Max(b.MaxLon, f.Coordinate.Lon)
		b.MaxLat = math.Max(b.MaxLat, f.Coordinate.Lat)
	}
	return b
}

func sha256Sum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
