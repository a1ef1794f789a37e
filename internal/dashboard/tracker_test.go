package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerIdleReturnsImmediately(t *testing.T) {
	var tr tracker
	require.NoError(t, tr.wait(context.Background()))
}

func TestTrackerWaitsForLastDone(t *testing.T) {
	var tr tracker
	tr.add()
	tr.add()

	done := make(chan error, 1)
	go func() { done <- tr.wait(context.Background()) }()

	tr.done()
	select {
	case <-done:
		t.Fatal("wait returned with work outstanding")
	case <-time.After(20 * time.Millisecond):
	}

	tr.done()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("wait did not return")
	}
}

func TestTrackerWaitHonoursContext(t *testing.T) {
	var tr tracker
	tr.add()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, tr.wait(ctx), context.DeadlineExceeded)
}

func TestTrackerReusable(t *testing.T) {
	var tr tracker
	tr.add()
	tr.done()
	tr.add()
	tr.done()
	require.NoError(t, tr.wait(context.Background()))
}
