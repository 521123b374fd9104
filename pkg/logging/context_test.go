package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/railmap/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly
		assert.Same(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("line and source fields", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithSource(ctx, "bart")
		ctx = logging.WithLine(ctx, "BARTRed")

		logging.Ctx(ctx).Info().Msg("hello")

		assert.True(t, testLogger.Contains(`"source":"bart"`))
		assert.True(t, testLogger.Contains(`"line":"BARTRed"`))
		assert.Equal(t, 1, testLogger.Count())
	})

	t.Run("operation field", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithOperation(ctx, "build")
		ctx = logging.WithField(ctx, "cause", errors.New("no match"))

		logging.FromContext(ctx).Warn().Msg("fields")
		assert.True(t, testLogger.Contains(`"operation":"build"`))
		assert.True(t, testLogger.Contains(`"cause":"no match"`))
	})

	t.Run("run id", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithRunID(ctx, "run-42")

		assert.Equal(t, "run-42", logging.RunID(ctx))
		logging.FromContext(ctx).Info().Msg("build")
		assert.True(t, testLogger.Contains(`"run_id":"run-42"`))
		assert.Empty(t, logging.RunID(context.Background()))
	})

}

func TestCaptureLoggingForTest(t *testing.T) {
	capture := logging.CaptureLoggingForTest(t)
	logging.Error().Str("stop", "Powell St").Msg("missing stop")
	assert.True(t, capture.Contains("missing stop"))
	assert.Equal(t, []string{capture.Lines()[0]}, capture.Lines())
}
