// Package bundle writes an assembled result to disk: station points,
// route lines, line metadata and a manifest, plus an optional SQLite copy.
//
// A result with unresolved stops is refused before any file is touched, so a
// bundle on disk never silently misses stops.
package bundle

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentstation/railmap/pkg/assembler"
	"github.com/agentstation/railmap/pkg/constants"
	"github.com/agentstation/railmap/pkg/errors"
)

// Option configures a Write call.
type Option func(*options)

type options struct {
	sqlitePath string
	logger     zerolog.Logger
}

// WithSQLite also exports the bundle to the SQLite database at path.
func WithSQLite(path string) Option {
	return func(o *options) {
		o.sqlitePath = path
	}
}

// WithLogger sets the logger used to report written files.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Write renders result into dir and returns the manifest it wrote.
//
// Every file is encoded before the first one is written. If result has
// missing references, Write returns result.Err() and writes nothing.
func Write(ctx context.Context, result *assembler.Result, dir string, opts ...Option) (*Manifest, error) {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	if err := result.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := encode(result)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Stations: result.TotalStations(),
		Lines:    len(result.StationsPerLine),
		Routes:   len(result.Routes),
		Bounds:   ComputeBounds(result.Features),
	}
	for _, f := range files {
		manifest.Files = append(manifest.Files, ManifestFile{
			Path:     f.name,
			Checksum: sha256Sum(f.data),
			Size:     len(f.data),
		})
	}
	manifestData, err := marshal(manifest)
	if err != nil {
		return nil, err
	}
	files = append(files, file{name: constants.ManifestFile, data: manifestData})

	if err := commit(dir, files, o.logger); err != nil {
		return nil, err
	}

	if o.sqlitePath != "" {
		if err := ExportSQLite(ctx, o.sqlitePath, result); err != nil {
			return nil, err
		}
		o.logger.Debug().Str("path", o.sqlitePath).Msg("Exported bundle to SQLite")
	}

	return manifest, nil
}

type file struct {
	name string
	data []byte
}

func encode(result *assembler.Result) ([]file, error) {
	features, err := marshal(StationCollection(result))
	if err != nil {
		return nil, err
	}
	routes, err := marshal(RouteCollection(result))
	if err != nil {
		return nil, err
	}
	lines, err := marshal(result.Lines)
	if err != nil {
		return nil, err
	}
	return []file{
		{name: constants.FeaturesFile, data: features},
		{name: constants.RoutesFile, data: routes},
		{name: constants.LinesFile, data: lines},
	}, nil
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return append(data, '\n'), nil
}

// writeFile is replaced in tests to simulate a failing disk.
var writeFile = func(path string, data []byte) error {
	return os.WriteFile(path, data, constants.FilePermissions)
}

// commit writes every file into a staging directory beside dir, then swaps
// it in with a single rename. A failed write leaves the previous bundle in
// dir untouched. Entries of the previous dir that are not bundle files are
// moved into the new one.
func commit(dir string, files []file, log zerolog.Logger) error {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", parent, err)
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+".staging-")
	if err != nil {
		return errors.WrapIO("create", parent, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()
	if err := os.Chmod(staging, constants.DirPermissions); err != nil {
		return errors.WrapIO("chmod", staging, err)
	}

	for _, f := range files {
		path := filepath.Join(staging, f.name)
		if err := writeFile(path, f.data); err != nil {
			return errors.WrapIO("write", path, err)
		}
		log.Debug().Str("path", filepath.Join(dir, f.name)).Int("bytes", len(f.data)).Msg("Wrote bundle file")
	}

	previous := ""
	if _, err := os.Stat(dir); err == nil {
		previous = staging + ".previous"
		if err := os.Rename(dir, previous); err != nil {
			return errors.WrapIO("rename", dir, err)
		}
	} else if !os.IsNotExist(err) {
		return errors.WrapIO("stat", dir, err)
	}
	if err := os.Rename(staging, dir); err != nil {
		if previous != "" {
			_ = os.Rename(previous, dir)
		}
		return errors.WrapIO("rename", staging, err)
	}
	committed = true

	if previous == "" {
		return nil
	}
	if err := carryOver(previous, dir, files); err != nil {
		log.Warn().Err(err).Str("path", previous).Msg("Kept previous bundle directory")
		return nil
	}
	if err := os.RemoveAll(previous); err != nil {
		log.Warn().Err(err).Str("path", previous).Msg("Could not remove previous bundle directory")
	}
	return nil
}

// carryOver moves entries of from that are not bundle files into to.
func carryOver(from, to string, files []file) error {
	bundled := make(map[string]bool, len(files))
	for _, f := range files {
		bundled[f.name] = true
	}
	entries, err := os.ReadDir(from)
	if err != nil {
		return errors.WrapIO("read", from, err)
	}
	for _, e := range entries {
		if bundled[e.Name()] {
			continue
		}
		if err := os.Rename(filepath.Join(from, e.Name()), filepath.Join(to, e.Name())); err != nil {
			return errors.WrapIO("rename", e.Name(), err)
		}
	}
	return nil
}
