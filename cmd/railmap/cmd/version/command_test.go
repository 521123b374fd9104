package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/railmap/internal/cmd/application"
)

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := NewCommand(&application.Mock{
		VersionFunc:      func() string { return "v0.3.0" },
		OutputFormatFunc: func() string { return "json" },
	})
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	var info Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "v0.3.0", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.NotEmpty(t, info.GoVersion)
}
