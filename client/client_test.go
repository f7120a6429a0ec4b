/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/binarylogic/envygo/projector"
	"github.com/binarylogic/envygo/transport"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, fake *transport.Fake) *Client {
	t.Helper()
	c := New(Config{
		Host: "envy.local",
		TransportFactory: func() transport.Transport {
			return fake
		},
		Sleep:  func(time.Duration) {},
		Random: func() float64 { return 0 },
	})
	t.Cleanup(func() { _ = c.Stop() })
	return c
}

func TestWelcomeEstablishesSync(t *testing.T) {
	fake := transport.NewFake(nil)
	c := newTestClient(t, fake)

	require.NoError(t, c.Start(context.Background()))
	fake.Push("WELCOME to Envy v1.1.3")

	require.NoError(t, c.WaitSyncedTimeout(time.Second))
	require.True(t, *c.State.IsOn)
	require.False(t, *c.State.Standby)
	require.Equal(t, "1.1.3", *c.State.Version)
}

func TestCommandAckOrdering(t *testing.T) {
	fake := transport.NewFake(nil)
	c := newTestClient(t, fake)
	require.NoError(t, c.Start(context.Background()))
	fake.Push("WELCOME to Envy v1.1.3")
	require.NoError(t, c.WaitSyncedTimeout(time.Second))

	order := make(chan string, 2)
	go func() {
		_, _ = c.Command(context.Background(), true, time.Second, "First")
		order <- "A"
	}()
	// Give A a chance to enqueue before B.
	time.Sleep(20 * time.Millisecond)
	go func() {
		_, _ = c.Command(context.Background(), true, time.Second, "Second")
		order <- "B"
	}()
	time.Sleep(20 * time.Millisecond)

	fake.Push("OK")
	fake.Push("OK")

	first := <-order
	second := <-order
	require.Equal(t, "A", first)
	require.Equal(t, "B", second)
}

func TestErrorPropagation(t *testing.T) {
	fake := transport.NewFake(nil)
	c := newTestClient(t, fake)
	require.NoError(t, c.Start(context.Background()))
	fake.Push("WELCOME to Envy v1.1.3")
	require.NoError(t, c.WaitSyncedTimeout(time.Second))

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Command(context.Background(), true, time.Second, "Nope")
		errCh <- err
	}()
	time.Sleep(20 * time.Millisecond)
	fake.Push(`ERROR "invalid command"`)

	err := <-errCh
	require.Error(t, err)
	rejected, ok := err.(*CommandRejectedError)
	require.True(t, ok, "expected *CommandRejectedError, got %T", err)
	require.Equal(t, "Nope", rejected.Command)
	require.Equal(t, "invalid command", rejected.Reason)
}

func TestEnumerationCollection(t *testing.T) {
	fake := transport.NewFake(nil)
	c := newTestClient(t, fake)
	require.NoError(t, c.Start(context.Background()))
	fake.Push("WELCOME to Envy v1.1.3")
	require.NoError(t, c.WaitSyncedTimeout(time.Second))

	go func() {
		time.Sleep(20 * time.Millisecond)
		fake.Push("OK")
		fake.Push(`ProfileGroup displayProfiles "Displays"`)
		fake.Push(`ProfileGroup customProfileGroup1 "Ambient Light"`)
		fake.Push("ProfileGroup.")
	}()

	groups, err := c.EnumProfileGroupsCollect(context.Background(), 500*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "displayProfiles", groups[0].GroupID)
	require.Equal(t, "Displays", groups[0].Name)
	require.Equal(t, "customProfileGroup1", groups[1].GroupID)
	require.Equal(t, "Ambient Light", groups[1].Name)
}

func TestEnumerationTimeout(t *testing.T) {
	fake := transport.NewFake(nil)
	c := newTestClient(t, fake)
	require.NoError(t, c.Start(context.Background()))
	fake.Push("WELCOME to Envy v1.1.3")
	require.NoError(t, c.WaitSyncedTimeout(time.Second))

	go func() {
		time.Sleep(10 * time.Millisecond)
		fake.Push("OK")
		fake.Push(`ProfileGroup displayProfiles "Displays"`)
		// no end marker
	}()

	_, err := c.EnumProfileGroupsCollect(context.Background(), 100*time.Millisecond)
	require.Error(t, err)
	timeoutErr, ok := err.(*EnumerationTimeoutError)
	require.True(t, ok, "expected *EnumerationTimeoutError, got %T", err)
	require.Equal(t, "EnumProfileGroups", timeoutErr.Command)
	require.Equal(t, 1, timeoutErr.ItemsCollected)
}

func TestReconnectBackoff(t *testing.T) {
	fake := transport.NewFake(nil, transport.ErrConnectionFailed, nil)
	var sleeps []time.Duration
	c := New(Config{
		Host: "envy.local",
		TransportFactory: func() transport.Transport {
			return fake
		},
		ReconnectInitialBackoff: 100 * time.Millisecond,
		ReconnectMaxBackoff:     400 * time.Millisecond,
		ReconnectJitter:         0,
		Sleep: func(d time.Duration) {
			sleeps = append(sleeps, d)
		},
		Random: func() float64 { return 0 },
	})
	t.Cleanup(func() { _ = c.Stop() })

	require.NoError(t, c.Start(context.Background()))
	fake.Push("WELCOME to Envy v1.1.3")
	require.NoError(t, c.WaitSyncedTimeout(time.Second))

	fake.Disconnect()

	require.Eventually(t, func() bool {
		return c.Connected()
	}, 2*time.Second, 10*time.Millisecond)

	fake.Push("WELCOME to Envy v1.1.4")
	require.NoError(t, c.WaitSyncedTimeout(time.Second))
	require.Equal(t, "1.1.4", *c.State.Version)

	require.Len(t, sleeps, 1)
	require.Equal(t, 100*time.Millisecond, sleeps[0])
}

func TestAdapterInitialEvent(t *testing.T) {
	fake := transport.NewFake(nil)
	c := newTestClient(t, fake)

	adapter := projector.NewEnvyStateAdapter()
	events := make(chan []projector.AdapterEvent, 8)
	token := c.RegisterAdapterCallback(adapter, func(_ projector.Snapshot, _ []projector.StateDelta, evs []projector.AdapterEvent) {
		events <- evs
	})

	require.NoError(t, c.Start(context.Background()))
	fake.Push("WELCOME to Envy v1.1.3")
	require.NoError(t, c.WaitSyncedTimeout(time.Second))

	first := <-events
	require.Len(t, first, 1)
	require.Equal(t, "initial", first[0].Kind)

	fake.Push("KeyPress MENU")
	second := <-events
	found := false
	for _, e := range second {
		if e.Kind == "button" {
			found = true
		}
	}
	require.True(t, found)

	c.DeregisterAdapterCallback(token)
	fake.Push("KeyPress MENU")

	select {
	case ev := <-events:
		t.Fatalf("expected no further emissions after deregistration, got %v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
