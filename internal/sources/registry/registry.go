// Package registry maps source types to their adapters.
// This package is separate from the adapters to avoid circular dependencies.
package registry

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/agentstation/railmap/internal/sources/geojson"
	"github.com/agentstation/railmap/internal/sources/gtfs"
	"github.com/agentstation/railmap/internal/sources/manual"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/sources"
)

// factory builds a source from its config and resolved dataset path.
type factory func(cfg sources.Config, path string) sources.Source

// registry maps source types to their constructors
var registry = map[sources.Type]factory{
	sources.TypeGeoJSON: func(cfg sources.Config, path string) sources.Source { return geojson.New(cfg, path) },
	sources.TypeGTFS:    func(cfg sources.Config, path string) sources.Source { return gtfs.New(cfg, path) },
	sources.TypeManual:  func(cfg sources.Config, _ string) sources.Source { return manual.New(cfg) },
}

// Get creates a source for cfg. Relative dataset paths resolve against baseDir.
func Get(cfg sources.Config, baseDir string) (sources.Source, error) {
	newSource, ok := registry[cfg.Type]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "type",
			Value:   cfg.Type,
			Message: fmt.Sprintf("unsupported source type: %s", cfg.Type),
		}
	}
	return newSource(cfg, ResolvePath(cfg.Path, baseDir)), nil
}

// Build creates every configured source, keeping declaration order.
func Build(cfgs []sources.Config, baseDir string) (*sources.Sources, error) {
	list := sources.NewSources()
	for _, cfg := range cfgs {
		if _, dup := list.Get(cfg.ID); dup {
			return nil, &errors.ValidationError{
				Field:   "sources",
				Value:   cfg.ID,
				Message: "duplicate source id",
			}
		}
		src, err := Get(cfg, baseDir)
		if err != nil {
			return nil, errors.WrapResource("create", "source", string(cfg.ID), err)
		}
		list.Add(src)
	}
	return list, nil
}

// Has checks if a source type has an adapter.
func Has(t sources.Type) bool {
	_, ok := registry[t]
	return ok
}

// List returns all source types that have adapters, sorted.
func List() []sources.Type {
	types := make([]sources.Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// ResolvePath joins a relative path onto baseDir.
func ResolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
