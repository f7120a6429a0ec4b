/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeConnectScriptThenSticky(t *testing.T) {
	f := NewFake(ErrConnectionFailed, nil)

	require.ErrorIs(t, f.Connect(context.Background()), ErrConnectionFailed)
	require.False(t, f.Connected())

	require.NoError(t, f.Connect(context.Background()))
	require.True(t, f.Connected())

	// script exhausted, last entry (nil) repeats
	require.NoError(t, f.Connect(context.Background()))
}

func TestFakeReadLineFIFO(t *testing.T) {
	f := NewFake(nil)
	require.NoError(t, f.Connect(context.Background()))
	f.Push("WELCOME to Envy v1.1.3")
	f.Push("OK")

	line, err := f.ReadLine(time.Second)
	require.NoError(t, err)
	require.Equal(t, "WELCOME to Envy v1.1.3", line)

	line, err = f.ReadLine(time.Second)
	require.NoError(t, err)
	require.Equal(t, "OK", line)
}

func TestFakeReadLineTimeoutWhenEmpty(t *testing.T) {
	f := NewFake(nil)
	require.NoError(t, f.Connect(context.Background()))
	_, err := f.ReadLine(time.Millisecond)
	require.ErrorIs(t, err, ErrConnectionTimeout)
}

func TestFakeSendLineRequiresConnection(t *testing.T) {
	f := NewFake(nil)
	require.ErrorIs(t, f.SendLine("Standby", time.Second), ErrNotConnected)

	require.NoError(t, f.Connect(context.Background()))
	require.NoError(t, f.SendLine("Standby", time.Second))
	require.Equal(t, []string{"Standby"}, f.Sent())
}

func TestFakeDisconnectFailsSubsequentIO(t *testing.T) {
	f := NewFake(nil)
	require.NoError(t, f.Connect(context.Background()))
	f.Disconnect()

	_, err := f.ReadLine(time.Second)
	require.ErrorIs(t, err, ErrNotConnected)
	require.ErrorIs(t, f.SendLine("Standby", time.Second), ErrNotConnected)
}
