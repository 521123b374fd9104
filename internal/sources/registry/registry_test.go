package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/sources"
)

func TestGet(t *testing.T) {
	for _, typ := range sources.Types() {
		src, err := Get(sources.Config{ID: sources.ID(typ), Type: typ, Path: "x"}, "/base")
		require.NoError(t, err, typ)
		assert.Equal(t, typ, src.Type())
		assert.True(t, Has(typ))
	}

	_, err := Get(sources.Config{ID: "osm", Type: "osm"}, "")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, Has("osm"))
}

func TestBuild_KeepsOrder(t *testing.T) {
	list, err := Build([]sources.Config{
		{ID: "master", Type: sources.TypeGeoJSON, Path: "a.geojson"},
		{ID: "feed", Type: sources.TypeGTFS, Path: "b.zip"},
		{ID: "manual", Type: sources.TypeManual},
	}, "/data")
	require.NoError(t, err)
	assert.Equal(t, []sources.ID{"master", "feed", "manual"}, list.IDs())

	_, err = Build([]sources.Config{
		{ID: "a", Type: sources.TypeManual},
		{ID: "a", Type: sources.TypeManual},
	}, "")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "a.geojson"), ResolvePath("a.geojson", "/data"))
	assert.Equal(t, "/abs/a.geojson", ResolvePath("/abs/a.geojson", "/data"))
	assert.Equal(t, "a.geojson", ResolvePath("a.geojson", ""))
	assert.Equal(t, "", ResolvePath("", "/data"))
}

func TestList(t *testing.T) {
	assert.Equal(t, []sources.Type{sources.TypeGeoJSON, sources.TypeGTFS, sources.TypeManual}, List())
}
