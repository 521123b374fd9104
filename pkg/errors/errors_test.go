package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/railmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "source type",
			ID:       "shapefile",
		}
		assert.Equal(t, "source type shapefile not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("line", "BARTRed")
		wrapped := fmt.Errorf("filter: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "lines[0].id",
			Message: "is required",
		}
		assert.Equal(t, "validation failed for field lines[0].id: is required", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "no sources declared"}
		assert.Equal(t, "validation failed: no sources declared", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapValidation("color", nil))
		err := pkgerrors.WrapValidation("color", errors.New("not hex"))
		assert.Contains(t, err.Error(), "color")
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("component", func(t *testing.T) {
		err := pkgerrors.NewConfigError("line EAL", "segment references unknown station \"Nowhere\"", nil)
		assert.Contains(t, err.Error(), "line EAL")
		assert.Contains(t, err.Error(), "Nowhere")
		assert.True(t, pkgerrors.IsConfigError(err))
		assert.False(t, pkgerrors.IsUnresolved(err))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.NewConfigError("", "bad", base)
		assert.Equal(t, "configuration error: bad", err.Error())
		assert.Equal(t, base, err.Unwrap())
	})
}

func TestParseError(t *testing.T) {
	t.Run("with position", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "yaml", File: "lines.yaml", Line: 3, Column: 5, Message: "bad indent"}
		assert.Equal(t, "parse error in yaml at lines.yaml:3:5: bad indent", err.Error())
	})

	t.Run("file only", func(t *testing.T) {
		err := pkgerrors.WrapParse("geojson", "bart.geojson", errors.New("unexpected EOF"))
		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "geojson", parseErr.Format)
		assert.Contains(t, err.Error(), "bart.geojson")
	})

	t.Run("no file", func(t *testing.T) {
		err := pkgerrors.NewParseError("csv", "", "missing header", nil)
		assert.Equal(t, "csv parse error: missing header", err.Error())
	})
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/features.json", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "/data/features.json")
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
		err := pkgerrors.WrapIO("read", "stops.txt", errors.New("permission denied"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "read", ioErr.Operation)
		assert.Equal(t, "stops.txt", ioErr.Path)
	})
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("load", "source", "bart", pkgerrors.ErrNotFound)
	resErr, ok := err.(*pkgerrors.ResourceError)
	require.True(t, ok)
	assert.Equal(t, "failed to load source bart: not found", resErr.Error())
	assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))

	noID := pkgerrors.NewResourceError("write", "bundle", "", errors.New("closed"))
	assert.Equal(t, "failed to write bundle: closed", noID.Error())
}
