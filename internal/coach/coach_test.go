package coach_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiphoYawe/Laurel-sub000/internal/coach"
)

func TestMockProvider_KeywordRouting(t *testing.T) {
	provider := coach.NewMockProvider()
	ctx := context.Background()

	reply, err := provider.Reply(ctx, 1, "I broke my streak yesterday")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	// Keyword-matched messages should not fall through to generic advice.
	fallback, err := provider.Reply(ctx, 1, "xyzzy")
	require.NoError(t, err)
	assert.NotEqual(t, fallback, reply)
}

func TestMockProvider_Deterministic(t *testing.T) {
	provider := coach.NewMockProvider()
	ctx := context.Background()

	first, err := provider.Reply(ctx, 1, "this deck is so hard")
	require.NoError(t, err)
	second, err := provider.Reply(ctx, 2, "this deck is so hard")
	require.NoError(t, err)

	assert.Equal(t, first, second, "same message must always get the same reply")
}

func TestMockProvider_FallbackAlwaysAnswers(t *testing.T) {
	provider := coach.NewMockProvider()

	reply, err := provider.Reply(context.Background(), 1, "completely unrelated question")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
