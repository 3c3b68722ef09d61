package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultSpec(t *testing.T) {
	ticker, err := New("")

	require.NoError(t, err)
	assert.Equal(t, DefaultSpec, ticker.Spec())
	assert.False(t, ticker.Running())
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New("every minute")

	assert.Error(t, err)
}

func TestStart_FiresImmediately(t *testing.T) {
	// Given: a ticker with a fixed clock
	fixed := time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC)
	ticker, err := New("0 0 1 1 *", WithNow(func() time.Time { return fixed }))
	require.NoError(t, err)

	// When: starting it
	var got []time.Time
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, ticker.Start(ctx, func(now time.Time) {
		got = append(got, now)
	}))
	defer ticker.Stop()

	// Then: the callback ran once with the injected time
	require.Len(t, got, 1)
	assert.Equal(t, fixed, got[0])
	assert.True(t, ticker.Running())
}

func TestStart_Twice(t *testing.T) {
	ticker, err := New(DefaultSpec)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ticker.Start(ctx, func(time.Time) {}))
	defer ticker.Stop()

	assert.Error(t, ticker.Start(ctx, func(time.Time) {}))
}

func TestStop_OnContextCancel(t *testing.T) {
	ticker, err := New(DefaultSpec)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, ticker.Start(ctx, func(time.Time) {}))

	cancel()

	assert.Eventually(t, func() bool { return !ticker.Running() }, time.Second, 10*time.Millisecond)
}

func TestStop_Idempotent(t *testing.T) {
	ticker, err := New(DefaultSpec)
	require.NoError(t, err)

	ticker.Stop()
	require.NoError(t, ticker.Start(context.Background(), func(time.Time) {}))
	ticker.Stop()
	ticker.Stop()

	assert.False(t, ticker.Running())
}
