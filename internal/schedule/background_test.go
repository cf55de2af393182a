package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStartDeliversResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	req := fourPlayerRequest(3)
	var reports []int
	req.OnProgress = func(n int) { reports = append(reports, n) }

	run := New(Options{Seed: 2, Logger: quietLogger()}).Start(context.Background(), req)

	var seen []int
	for n := range run.Progress() {
		seen = append(seen, n)
	}
	<-run.Done()

	res, err := run.Wait()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, []int{1}, seen)
	assert.Equal(t, []int{1}, reports, "the caller's own callback still runs")
}

func TestStartSlowReaderDoesNotBlock(t *testing.T) {
	defer goleak.VerifyNone(t)

	run := New(Options{MaxAttempts: 95, Seed: 2, Logger: quietLogger()}).
		Start(context.Background(), infeasibleRequest())

	// Nobody reads progress until the run is over.
	_, err := run.Wait()
	require.ErrorIs(t, err, ErrMaxRetriesReached)

	var seen []int
	for n := range run.Progress() {
		seen = append(seen, n)
	}
	assert.Equal(t, []int{90}, seen, "only the newest count is kept")
}

func TestStartCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	run := New(Options{MaxAttempts: 1 << 30, Seed: 2, Logger: quietLogger()}).
		Start(ctx, infeasibleRequest())

	select {
	case n, ok := <-run.Progress():
		require.True(t, ok)
		assert.Positive(t, n)
		assert.Zero(t, n%DefaultProgressEvery)
	case <-time.After(10 * time.Second):
		t.Fatal("no progress reported")
	}
	cancel()

	select {
	case <-run.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop after cancellation")
	}

	res, err := run.Wait()
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
}
