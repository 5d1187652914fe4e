package deadline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithin_ShorterDeadlineWins(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	ctx, stop := Within(parent, 100*time.Millisecond)
	defer stop()

	dl, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(100*time.Millisecond), dl, 50*time.Millisecond)

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	parentDL, _ := short.Deadline()

	ctx2, stop2 := Within(short, time.Minute)
	defer stop2()

	dl2, _ := ctx2.Deadline()
	require.Equal(t, parentDL, dl2)
}

func TestWithin_ZeroOnlyCancels(t *testing.T) {
	t.Parallel()

	ctx, stop := Within(context.Background(), 0)
	_, ok := ctx.Deadline()
	require.False(t, ok)

	stop()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	require.False(t, Exceeded(ctx))
}

func TestExceeded(t *testing.T) {
	t.Parallel()

	ctx, stop := Within(context.Background(), time.Millisecond)
	defer stop()

	<-ctx.Done()
	require.True(t, Exceeded(ctx))
}
