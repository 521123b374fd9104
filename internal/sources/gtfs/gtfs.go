// Package gtfs reads stations from the stops of a GTFS feed. The feed may be
// a zip archive or a directory; a path to stops.txt reads its directory.
package gtfs

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/patrickbr/gtfsparser"
	gtfsmodel "github.com/patrickbr/gtfsparser/gtfs"

	"github.com/agentstation/railmap/pkg/constants"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/logging"
	"github.com/agentstation/railmap/pkg/sources"
)

const stopsFile = "stops.txt"

// Source loads stations from one GTFS feed.
type Source struct {
	cfg  sources.Config
	path string
}

// New creates a GTFS source. path is the resolved feed path.
func New(cfg sources.Config, path string) *Source {
	return &Source{cfg: cfg, path: path}
}

// ID returns the configured source id.
func (s *Source) ID() sources.ID {
	return s.cfg.ID
}

// Type returns sources.TypeGTFS.
func (s *Source) Type() sources.Type {
	return sources.TypeGTFS
}

// Load parses the feed and adds every stop whose location_type is accepted,
// in stop_id order. Stops the parser drops as erroneous count as rejected.
// The agency is the configured one, else the feed's agency when agency.txt
// names exactly one, else the default agency.
func (s *Source) Load(ctx context.Context, sink sources.Sink) (sources.Stats, error) {
	var stats sources.Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	path, err := feedPath(s.path)
	if err != nil {
		return stats, err
	}
	if err := verifyArchive(path); err != nil {
		return stats, err
	}

	feed := gtfsparser.NewFeed()
	feed.SetParseOpts(gtfsparser.ParseOptions{DropErroneous: true})
	if err := feed.Parse(path); err != nil {
		return stats, errors.WrapParse("gtfs", path, err)
	}

	dropped := feed.ErrorStats.DroppedStops
	stats.Read = len(feed.Stops) + dropped
	stats.Rejected = dropped
	if dropped > 0 {
		logging.FromContext(ctx).Debug().
			Str("source", string(s.cfg.ID)).
			Int("dropped", dropped).
			Msg("Parser dropped erroneous stops")
	}

	agency := s.cfg.Agency
	if agency == "" {
		agency = feedAgency(feed)
	}

	for _, stop := range sortedStops(feed) {
		if !s.acceptsLocationType(int(stop.Location_type)) {
			stats.Rejected++
			continue
		}
		coord := []float64{widen(stop.Lon), widen(stop.Lat)}
		stats.Record(sink, s.cfg.ID, strings.TrimSpace(stop.Name), coord, agency)
	}
	return stats, nil
}

func (s *Source) acceptsLocationType(lt int) bool {
	return len(s.cfg.LocationTypes) == 0 || slices.Contains(s.cfg.LocationTypes, lt)
}

// feedPath checks that path exists and maps a bare stops.txt to its feed
// directory.
func feedPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFoundError("gtfs feed", path)
		}
		return "", errors.WrapIO("stat", path, err)
	}
	if !info.IsDir() && strings.EqualFold(filepath.Base(path), stopsFile) {
		return filepath.Dir(path), nil
	}
	return path, nil
}

// verifyArchive reads every entry of a zip feed to the end so a truncated or
// corrupt archive fails with a checksum error before it is parsed.
func verifyArchive(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return nil
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return errors.WrapParse("zip", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if err := drain(f); err != nil {
			return errors.WrapParse("zip", path+":"+f.Name, err)
		}
	}
	return nil
}

func drain(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(io.Discard, rc)
	return err
}

// sortedStops returns the parsed stops ordered by stop_id, since the parser
// keeps them in a map.
func sortedStops(feed *gtfsparser.Feed) []*gtfsmodel.Stop {
	ids := make([]string, 0, len(feed.Stops))
	for id := range feed.Stops {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	stops := make([]*gtfsmodel.Stop, 0, len(ids))
	for _, id := range ids {
		stops = append(stops, feed.Stops[id])
	}
	return stops
}

// feedAgency returns the name of the feed's only agency, or the default.
func feedAgency(feed *gtfsparser.Feed) string {
	if len(feed.Agencies) != 1 {
		return constants.DefaultAgency
	}
	for _, a := range feed.Agencies {
		if name := strings.TrimSpace(a.Name); name != "" {
			return name
		}
	}
	return constants.DefaultAgency
}

// widen converts a parsed float32 coordinate to the shortest float64 that
// prints the same, so 37.5998 stays 37.5998 in the output.
func widen(v float32) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'f', -1, 32), 64)
	if err != nil {
		return float64(v)
	}
	return f
}
