/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotConnected is returned by command methods when no transport is
// currently attached — either never connected, or mid-reconnect.
var ErrNotConnected = errors.New("client: not connected")

// ErrStopped names the stopped client state. No Client method returns it;
// commands issued after Stop fail with ErrNotConnected.
var ErrStopped = errors.New("client: stopped")

// ErrAckTimeout is returned when a command's ack does not arrive within
// its ackTimeout window.
var ErrAckTimeout = errors.New("client: ack timeout")

// CommandRejectedError wraps a device ERROR ack for a specific command.
type CommandRejectedError struct {
	Command string
	Reason  string
}

func (e *CommandRejectedError) Error() string {
	return fmt.Sprintf("client: command %q rejected: %s", e.Command, e.Reason)
}

// EnumerationTimeoutError is raised when an enum*Collect call does not see
// its end marker before timeout.
type EnumerationTimeoutError struct {
	Command        string
	ItemType       string
	EndType        string
	Timeout        time.Duration
	ItemsCollected int
}

func (e *EnumerationTimeoutError) Error() string {
	return fmt.Sprintf("client: enumeration %q timed out after %s (item=%s, end=%s, collected=%d)",
		e.Command, e.Timeout, e.ItemType, e.EndType, e.ItemsCollected)
}
