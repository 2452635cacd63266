package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck
}

func TestWithLoggerRoundTrip(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	assert.Equal(t, tl.Logger, FromContext(ctx))
}

func TestWithFieldAttachesField(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithField(ctx, "strategy", "voting")

	FromContext(ctx).Info().Msg("resolving")

	assert.True(t, tl.Contains(`"strategy":"voting"`))
	assert.True(t, tl.Contains("resolving"))
}

func TestWithSourceAndOperation(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithSource(ctx, "jsonld")
	ctx = WithOperation(ctx, "merge")

	FromContext(ctx).Debug().Msg("collected")

	assert.True(t, tl.Contains(`"source":"jsonld"`))
	assert.True(t, tl.Contains(`"operation":"merge"`))
}
