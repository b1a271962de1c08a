package suspend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckpointer struct {
	calls int
	err   error
}

func (f *fakeCheckpointer) Checkpoint(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestGateStartsActive(t *testing.T) {
	gate := NewGate(&fakeCheckpointer{})

	assert.False(t, gate.Suspended())
	status, changedAt := gate.Status()
	assert.Equal(t, StatusActive, status)
	assert.True(t, changedAt.IsZero())
}

func TestSuspendChecksPointsAndGates(t *testing.T) {
	cp := &fakeCheckpointer{}
	gate := NewGate(cp)
	ctx := context.Background()

	require.NoError(t, gate.Suspend(ctx))
	assert.True(t, gate.Suspended())
	assert.Equal(t, 1, cp.calls)

	status, changedAt := gate.Status()
	assert.Equal(t, StatusSuspended, status)
	assert.False(t, changedAt.IsZero())
}

func TestSuspendTwiceRechecksPoints(t *testing.T) {
	cp := &fakeCheckpointer{}
	gate := NewGate(cp)
	ctx := context.Background()

	require.NoError(t, gate.Suspend(ctx))
	_, first := gate.Status()

	require.NoError(t, gate.Suspend(ctx))
	_, second := gate.Status()

	assert.Equal(t, 2, cp.calls, "every suspend call flushes, so a retry is safe")
	assert.Equal(t, first, second, "transition time only changes on a real transition")
}

func TestSuspendCheckpointFailureStaysGated(t *testing.T) {
	cp := &fakeCheckpointer{err: errors.New("disk full")}
	gate := NewGate(cp)
	ctx := context.Background()

	err := gate.Suspend(ctx)
	require.Error(t, err)
	assert.True(t, gate.Suspended(), "writes must stay rejected after a failed checkpoint")

	// Retrying after the fault clears runs the checkpoint again.
	cp.err = nil
	require.NoError(t, gate.Suspend(ctx))
	assert.Equal(t, 2, cp.calls)
}

func TestResume(t *testing.T) {
	cp := &fakeCheckpointer{}
	gate := NewGate(cp)
	ctx := context.Background()

	require.NoError(t, gate.Suspend(ctx))
	gate.Resume(ctx)

	assert.False(t, gate.Suspended())
	status, changedAt := gate.Status()
	assert.Equal(t, StatusActive, status)
	assert.False(t, changedAt.IsZero())
	assert.Equal(t, 1, cp.calls, "resume needs no checkpoint")
}

func TestResumeWhenActiveIsNoOp(t *testing.T) {
	gate := NewGate(&fakeCheckpointer{})

	gate.Resume(context.Background())
	assert.False(t, gate.Suspended())
	_, changedAt := gate.Status()
	assert.True(t, changedAt.IsZero())
}
