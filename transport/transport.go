/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package transport defines the capability contract the client core uses
// to talk to an Envy device, plus the real TCP implementation. The
// interface exists so the client can be driven by a fake transport in
// tests without opening a socket.
package transport

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConnectionFailed is returned by Connect when the underlying dial
	// fails for any reason other than a timeout.
	ErrConnectionFailed = errors.New("transport: connection failed")

	// ErrConnectionTimeout is returned by Connect, ReadLine, or SendLine
	// when the operation's deadline elapses.
	ErrConnectionTimeout = errors.New("transport: connection timeout")

	// ErrNotConnected is returned by ReadLine/SendLine when the transport
	// has no live connection, and signals the listen loop to reconnect.
	// It is distinct from ErrConnectionTimeout, which means "try again".
	ErrNotConnected = errors.New("transport: not connected")
)

// Transport is the line-oriented I/O contract the client core depends on.
// Implementations need not be safe for concurrent ReadLine and SendLine
// calls from multiple goroutines beyond what the client itself does (one
// reader, one writer at a time).
type Transport interface {
	// Connected reports whether the transport currently believes it has
	// a live connection. It is advisory; I/O errors are authoritative.
	Connected() bool

	// Connect dials the device. ctx governs the connect timeout.
	Connect(ctx context.Context) error

	// Close tears down the connection. Safe to call on an already-closed
	// or never-connected transport.
	Close() error

	// ReadLine returns the next line, without its terminator. A timeout
	// returns ErrConnectionTimeout; callers should treat that as "keep
	// waiting", not as a connection failure.
	ReadLine(timeout time.Duration) (string, error)

	// SendLine writes one line, appending the wire terminator.
	SendLine(line string, timeout time.Duration) error
}

// Factory builds a fresh, unconnected Transport. The client core calls it
// once per connect attempt so that a prior failed transport is never
// reused across reconnects.
type Factory func() Transport
