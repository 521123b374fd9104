package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/railmap/pkg/constants"
	"github.com/agentstation/railmap/pkg/errors"
	"github.com/agentstation/railmap/pkg/logging"
)

const testProject = `
lines:
  - id: Red
    color: "#E2231A"
    stops: [Richmond, Millbrae]
  - id: Yellow
    stops: [Antioch, Millbrae]
sources:
  - id: stations
    type: manual
    agency: BART
    stations:
      - {name: Richmond, lon: -122.3535, lat: 37.9369}
      - {name: Millbrae, lon: -122.3867, lat: 37.6002}
      - {name: Antioch, lon: -121.7804, lat: 37.9955}
`

type harness struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	app, err := New("1.2.3", "abc123", "2026-01-01", "test",
		WithConfig(&Config{LogFormat: "json", LogOutput: "discard"}),
		WithLogger(logging.NewNopLogger()),
		WithOutput(h.out, h.errOut),
	)
	require.NoError(t, err)
	h.app = app
	return h
}

func (h *harness) run(args ...string) error {
	return h.app.Execute(context.Background(), args)
}

func writeProject(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), constants.DefaultProjectFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestExecute_Tokenize(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("tokenize", "-o", "json", "21st St", "King St & 4th St"))

	var rows []struct {
		Name   string   `json:"name"`
		Tokens []string `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"st", "twentyfirst"}, rows[0].Tokens)
	assert.Equal(t, []string{"fourth", "king", "st"}, rows[1].Tokens)
}

func TestExecute_TokenizeNeedsArgs(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("tokenize"))
}

func TestExecute_Build(t *testing.T) {
	h := newHarness(t)
	path := writeProject(t, testProject)
	out := filepath.Join(t.TempDir(), "bundle")

	require.NoError(t, h.run("build", "-p", path, "-o", "json", "--out", out))

	var report struct {
		RunID     string `json:"run_id"`
		OutputDir string `json:"output_dir"`
		Manifest  struct {
			Stations int `json:"stations"`
		} `json:"manifest"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, out, report.OutputDir)
	assert.Equal(t, 4, report.Manifest.Stations)
	assert.FileExists(t, filepath.Join(out, constants.FeaturesFile))
}

func TestExecute_BuildTable(t *testing.T) {
	h := newHarness(t)
	path := writeProject(t, testProject)

	require.NoError(t, h.run("build", "-p", path, "--out", t.TempDir(), "--lines", "Red"))
	assert.Contains(t, h.out.String(), "Wrote 2 stations across 1 lines")
}

func TestExecute_BuildMissing(t *testing.T) {
	h := newHarness(t)
	path := writeProject(t, strings.Replace(testProject, "[Antioch, Millbrae]", "[Antioch, Pittsburg, Millbrae]", 1))
	out := filepath.Join(t.TempDir(), "bundle")

	err := h.run("build", "-p", path, "-o", "json", "--out", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnresolved)
	assert.Contains(t, h.errOut.String(), "Pittsburg")
	assert.NoDirExists(t, out)
}

func TestExecute_ResolveQuery(t *testing.T) {
	h := newHarness(t)
	path := writeProject(t, testProject)

	require.NoError(t, h.run("resolve", "-p", path, "-o", "json", "Millbrae", "Nowhere"))

	var queries []struct {
		Query      string `json:"query"`
		Candidates []struct {
			Name  string `json:"name"`
			Extra int    `json:"extra"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &queries))
	require.Len(t, queries, 2)
	require.Len(t, queries[0].Candidates, 1)
	assert.Equal(t, "Millbrae", queries[0].Candidates[0].Name)
	assert.Empty(t, queries[1].Candidates)
}

func TestExecute_ResolveLines(t *testing.T) {
	h := newHarness(t)
	path := writeProject(t, strings.Replace(testProject, "[Antioch, Millbrae]", "[Antioch, Pittsburg]", 1))

	err := h.run("resolve", "-p", path, "-o", "json")
	assert.ErrorIs(t, err, errors.ErrUnresolved)

	var rows []struct {
		Line    string `json:"line"`
		Stop    string `json:"stop"`
		Station string `json:"station"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "Pittsburg", rows[3].Stop)
	assert.Empty(t, rows[3].Station)

	h = newHarness(t)
	require.NoError(t, h.run("resolve", "-p", path, "-o", "json", "--lines", "Red"))
}

func TestExecute_Validate(t *testing.T) {
	h := newHarness(t)
	path := writeProject(t, testProject)

	require.NoError(t, h.run("validate", "-p", path, "-o", "yaml"))
	assert.Contains(t, h.out.String(), "stations")
	assert.Contains(t, h.out.String(), "stops: 4")

	bad := writeProject(t, "sources: []\n")
	assert.Error(t, h.run("validate", "-p", bad))
}

func TestExecute_Version(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("version", "-o", "json"))

	var info map[string]string
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &info))
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "abc123", info["commit"])
}

func TestExecute_InvalidFormat(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("tokenize", "-o", "csv", "x"))
}
