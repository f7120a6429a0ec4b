/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorderUpdatesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.SetConnectionState(true)
	require.Equal(t, float64(1), testutil.ToFloat64(r.connectionState))
	r.SetConnectionState(false)
	require.Equal(t, float64(0), testutil.ToFloat64(r.connectionState))

	r.IncReconnectAttempts()
	r.IncReconnectAttempts()
	require.Equal(t, float64(2), testutil.ToFloat64(r.reconnectAttempts))

	r.IncCommandsSent()
	require.Equal(t, float64(1), testutil.ToFloat64(r.commandsSent))

	r.IncCommandAcks("ok")
	r.IncCommandAcks("ok")
	r.IncCommandAcks("error")
	require.Equal(t, float64(2), testutil.ToFloat64(r.commandAcks.WithLabelValues("ok")))
	require.Equal(t, float64(1), testutil.ToFloat64(r.commandAcks.WithLabelValues("error")))

	r.ObserveEnumerationDuration("EnumProfileGroups", 250*time.Millisecond)
	require.Equal(t, 1, testutil.CollectAndCount(r.enumerationDuration))
}

func TestNilRecorderIsNoOp(t *testing.T) {
	var r *Recorder
	r.SetConnectionState(true)
	r.IncReconnectAttempts()
	r.IncCommandsSent()
	r.IncCommandAcks("ok")
	r.ObserveEnumerationDuration("EnumProfileGroups", time.Second)
}
