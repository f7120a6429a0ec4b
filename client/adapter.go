/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"github.com/binarylogic/envygo/projector"
	"github.com/binarylogic/envygo/protocol"
)

// AdapterCallback receives a projector snapshot alongside the deltas and
// events derived against the previous one.
type AdapterCallback func(snapshot projector.Snapshot, deltas []projector.StateDelta, events []projector.AdapterEvent)

// RegisterAdapterCallback drives adapter from every received_message event
// and forwards to cb — but only when there is something to report: the
// very first observation synthesizes a single synthetic "initial" event
// (an AdapterEvent with Kind "initial" and an empty payload) instead of the
// adapter's natural empty deltas/events, and subsequent observations that
// produce neither a delta nor an event are suppressed entirely.
func (c *Client) RegisterAdapterCallback(adapter *projector.EnvyStateAdapter, cb AdapterCallback) int {
	return c.RegisterCallback(func(event string, _ protocol.Message) {
		if event != EventMessage {
			return
		}

		firstObservation := !adapter.HasSnapshot()
		snapshot, deltas, events := adapter.Update(c.State)

		if firstObservation {
			cb(snapshot, nil, []projector.AdapterEvent{{Kind: "initial", Payload: map[string]any{}}})
			return
		}

		if len(deltas) == 0 && len(events) == 0 {
			return
		}
		cb(snapshot, deltas, events)
	})
}

// DeregisterAdapterCallback is DeregisterCallback, kept as a named
// counterpart to RegisterAdapterCallback for symmetry at call sites.
func (c *Client) DeregisterAdapterCallback(token int) {
	c.DeregisterCallback(token)
}
