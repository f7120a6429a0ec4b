/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package projector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/binarylogic/envygo/protocol"
	"github.com/binarylogic/envygo/state"
)

func TestFirstUpdateHasNoDeltasOrEvents(t *testing.T) {
	a := NewEnvyStateAdapter()
	s := state.New()
	s.Apply(protocol.Welcome{Version: "1.1.3"})

	snap, deltas, events := a.Update(s)
	require.True(t, a.HasSnapshot())
	require.True(t, snap.Synced)
	require.Empty(t, deltas)
	require.Empty(t, events)
}

func TestIdenticalSnapshotsProduceNoDeltas(t *testing.T) {
	s := state.New()
	s.Apply(protocol.Welcome{Version: "1.1.3"})

	s1 := FromState(s)
	s2 := FromState(s)
	require.Empty(t, buildDeltas(s1, s2))
	if diff := cmp.Diff(s1, s2); diff != "" {
		t.Fatalf("snapshots should be identical: %s", diff)
	}
}

func TestButtonPressProducesButtonEvent(t *testing.T) {
	a := NewEnvyStateAdapter()
	s := state.New()
	s.Apply(protocol.Welcome{Version: "1.1.3"})
	_, _, _ = a.Update(s)

	s.Apply(protocol.KeyPress{Button: "MENU"})
	_, deltas, events := a.Update(s)

	require.NotEmpty(t, deltas)
	found := false
	for _, e := range events {
		if e.Kind == "button" {
			found = true
			require.Equal(t, &ButtonEvent{Kind: "press", Button: "MENU"}, e.Payload["button"])
		}
	}
	require.True(t, found)
}

func TestCounterEventsFireOnlyOnIncrease(t *testing.T) {
	a := NewEnvyStateAdapter()
	s := state.New()
	s.Apply(protocol.Welcome{Version: "1.1.3"})
	_, _, _ = a.Update(s)

	s.Apply(protocol.ResetTemporary{})
	_, _, events := a.Update(s)
	require.Len(t, events, 1)
	require.Equal(t, "temporary_reset", events[0].Kind)
	require.Equal(t, 1, events[0].Payload["count"])

	// no further change -> no event
	_, _, events = a.Update(s)
	require.Empty(t, events)
}

func TestResetRuntimeValuesDoesNotFireSpuriousCounterEvent(t *testing.T) {
	a := NewEnvyStateAdapter()
	s := state.New()
	s.Apply(protocol.Welcome{Version: "1.1.3"})
	s.Apply(protocol.ResetTemporary{})
	_, _, _ = a.Update(s)

	s.ResetRuntimeValues()
	_, _, events := a.Update(s)
	for _, e := range events {
		require.NotEqual(t, "temporary_reset", e.Kind)
	}
}
