/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package client implements the Envy connection supervisor: it owns the
// transport, runs the read loop, reconnects with backoff, serializes
// commands, correlates acks, and fans inbound messages out to callbacks.
package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/binarylogic/envygo/internal/envylog"
	"github.com/binarylogic/envygo/internal/metrics"
	"github.com/binarylogic/envygo/protocol"
	"github.com/binarylogic/envygo/state"
	"github.com/binarylogic/envygo/transport"
)

// DefaultPort is the device's fixed IP control port.
const DefaultPort = 44077

const (
	defaultConnectTimeout    = 3 * time.Second
	defaultCommandTimeout    = 2 * time.Second
	defaultReadTimeout       = 30 * time.Second
	defaultReconnectInitial  = 1 * time.Second
	defaultReconnectMax      = 30 * time.Second
	defaultReconnectJitter   = 0.2
)

// Event names passed to a registered Callback.
const (
	EventConnected    = "connected"
	EventDisconnected = "disconnected"
	EventMessage      = "received_message"
)

// Callback receives every lifecycle and message event the listen loop
// emits. event is one of EventConnected, EventDisconnected, EventMessage;
// msg is nil for the first two.
type Callback func(event string, msg protocol.Message)

// Config configures a Client. Zero values fall back to the documented
// defaults; Host is the only required field.
type Config struct {
	Host string
	Port int // default DefaultPort

	ConnectTimeout time.Duration // default 3s
	CommandTimeout time.Duration // default 2s
	ReadTimeout    time.Duration // default 30s

	ReconnectInitialBackoff time.Duration // default 1s
	ReconnectMaxBackoff     time.Duration // default 30s
	ReconnectJitter         float64       // default 0.2
	DisableAutoReconnect    bool

	Logger  *envylog.Logger
	Metrics *metrics.Recorder

	// TransportFactory overrides how a fresh transport is minted per
	// connect attempt; tests inject transport.NewFake-backed factories.
	TransportFactory transport.Factory

	// Sleep and Random are injection points for deterministic reconnect
	// backoff tests.
	Sleep  func(time.Duration)
	Random func() float64
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.CommandTimeout == 0 {
		c.CommandTimeout = defaultCommandTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.ReconnectInitialBackoff == 0 {
		c.ReconnectInitialBackoff = defaultReconnectInitial
	}
	if c.ReconnectMaxBackoff == 0 {
		c.ReconnectMaxBackoff = defaultReconnectMax
	}
	if c.ReconnectJitter == 0 {
		c.ReconnectJitter = defaultReconnectJitter
	}
	if c.Logger == nil {
		c.Logger = envylog.NewDiscard()
	}
	if c.TransportFactory == nil {
		c.TransportFactory = transport.NewFactory(c.Host, c.Port)
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	if c.Random == nil {
		c.Random = rand.Float64
	}
	return c
}

type ackResult struct {
	msg protocol.Message
	err error
}

// Client is the connection supervisor. The zero value is not usable;
// construct with New.
type Client struct {
	cfg   Config
	State *state.EnvyState
	log   *envylog.KVLogger

	mu        sync.Mutex
	tr        transport.Transport
	running   bool
	cancel    context.CancelFunc
	group     *errgroup.Group

	syncMu sync.Mutex
	syncCh chan struct{}

	cbMu     sync.Mutex
	cbs      map[int]Callback
	nextCbID int

	ackMu      sync.Mutex
	ackWaiters []chan ackResult

	cmdMu sync.Mutex
}

// New constructs a Client for cfg.Host:cfg.Port. It does not connect;
// call Start.
func New(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg:    cfg,
		State:  state.New(),
		log:    envylog.WithKV(cfg.Logger, envylog.KV("host", cfg.Host), envylog.KV("port", cfg.Port)),
		syncCh: make(chan struct{}),
		cbs:    make(map[int]Callback),
	}
}

// Connected reports whether the client currently has a live transport.
func (c *Client) Connected() bool {
	c.mu.Lock()
	tr := c.tr
	c.mu.Unlock()
	return tr != nil && tr.Connected()
}

// Start is idempotent: if a listen loop is already running it returns
// immediately. Otherwise it connects once (propagating any connect
// error) and then spawns the listen loop.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.connect(ctx); err != nil {
		return err
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(listenCtx)

	c.mu.Lock()
	c.running = true
	c.cancel = cancel
	c.group = g
	c.mu.Unlock()

	g.Go(func() error {
		c.listenLoop(gctx)
		return nil
	})
	return nil
}

// Stop is idempotent: sets the stopping flag, cancels the listen loop,
// waits for it to exit, and disconnects statefully.
func (c *Client) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	cancel := c.cancel
	g := c.group
	c.running = false
	c.mu.Unlock()

	cancel()
	_ = g.Wait()

	c.disconnectStatefully()
	return nil
}

// WaitSynced blocks until a Welcome has been observed on the current
// connection, or ctx is done.
func (c *Client) WaitSynced(ctx context.Context) error {
	c.syncMu.Lock()
	ch := c.syncCh
	c.syncMu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitSyncedTimeout is WaitSynced with a bounded deadline.
func (c *Client) WaitSyncedTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.WaitSynced(ctx)
}

func (c *Client) markSynced() {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	select {
	case <-c.syncCh:
	default:
		close(c.syncCh)
	}
}

func (c *Client) resetSync() {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	c.syncCh = make(chan struct{})
}

// RegisterCallback adds fn to the fan-out set and returns a token usable
// with DeregisterCallback.
func (c *Client) RegisterCallback(fn Callback) int {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	id := c.nextCbID
	c.nextCbID++
	c.cbs[id] = fn
	return id
}

// DeregisterCallback removes a callback previously returned by
// RegisterCallback or RegisterAdapterCallback. Safe to call from inside
// the callback itself.
func (c *Client) DeregisterCallback(token int) {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	delete(c.cbs, token)
}

func (c *Client) emit(event string, msg protocol.Message) {
	c.cbMu.Lock()
	snapshot := make([]Callback, 0, len(c.cbs))
	for _, fn := range c.cbs {
		snapshot = append(snapshot, fn)
	}
	c.cbMu.Unlock()

	for _, fn := range snapshot {
		c.invokeCallback(fn, event, msg)
	}
}

func (c *Client) invokeCallback(fn Callback, event string, msg protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("callback panicked", envylog.KV("event", event), envylog.KV("panic", fmt.Sprint(r)))
		}
	}()
	fn(event, msg)
}

func (c *Client) connect(ctx context.Context) error {
	c.mu.Lock()
	if c.tr != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.resetSync()
	c.State.ResetRuntimeValues()

	tr := c.cfg.TransportFactory()

	cctx := ctx
	var cancel context.CancelFunc
	if c.cfg.ConnectTimeout > 0 {
		cctx, cancel = context.WithTimeout(ctx, c.cfg.ConnectTimeout)
		defer cancel()
	}

	if err := tr.Connect(cctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.tr = tr
	c.mu.Unlock()

	if c.cfg.Metrics != nil {
		c.cfg.Metrics.SetConnectionState(true)
	}
	c.emit(EventConnected, nil)
	return nil
}

func (c *Client) disconnectStatefully() {
	c.mu.Lock()
	tr := c.tr
	c.tr = nil
	c.mu.Unlock()

	c.resetSync()
	c.State.ResetRuntimeValues()

	c.ackMu.Lock()
	waiters := c.ackWaiters
	c.ackWaiters = nil
	c.ackMu.Unlock()
	for _, w := range waiters {
		select {
		case w <- ackResult{err: ErrNotConnected}:
		default:
		}
	}

	if tr != nil {
		_ = tr.Close()
	}

	if c.cfg.Metrics != nil {
		c.cfg.Metrics.SetConnectionState(false)
	}
	c.emit(EventDisconnected, nil)
}

func (c *Client) listenLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.Lock()
		tr := c.tr
		c.mu.Unlock()
		if tr == nil {
			return
		}

		line, err := tr.ReadLine(c.cfg.ReadTimeout)
		if err != nil {
			if errors.Is(err, transport.ErrConnectionTimeout) {
				continue
			}
			c.disconnectStatefully()
			if !c.reconnectUntilSuccess(ctx) {
				return
			}
			continue
		}

		msg := protocol.Parse(line)
		c.State.Apply(msg)
		c.resolveAckWaiter(msg)
		c.emit(EventMessage, msg)

		if c.State.Synced() {
			c.markSynced()
		}
	}
}

func (c *Client) resolveAckWaiter(msg protocol.Message) {
	switch msg.(type) {
	case protocol.Ok, protocol.Error:
	default:
		return
	}

	c.ackMu.Lock()
	if len(c.ackWaiters) == 0 {
		c.ackMu.Unlock()
		return
	}
	w := c.ackWaiters[0]
	c.ackWaiters = c.ackWaiters[1:]
	c.ackMu.Unlock()

	select {
	case w <- ackResult{msg: msg}:
	default:
	}
}

func (c *Client) removeAckWaiter(target chan ackResult) {
	c.ackMu.Lock()
	defer c.ackMu.Unlock()
	for i, w := range c.ackWaiters {
		if w == target {
			c.ackWaiters = append(c.ackWaiters[:i], c.ackWaiters[i+1:]...)
			return
		}
	}
}

func (c *Client) reconnectUntilSuccess(ctx context.Context) bool {
	if c.cfg.DisableAutoReconnect {
		return false
	}

	delay := c.cfg.ReconnectInitialBackoff
	if delay < 0 {
		delay = 0
	}

	for {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if c.cfg.Metrics != nil {
			c.cfg.Metrics.IncReconnectAttempts()
		}

		err := c.connect(ctx)
		if err == nil {
			return true
		}
		if !errors.Is(err, transport.ErrConnectionFailed) && !errors.Is(err, transport.ErrConnectionTimeout) {
			return false
		}

		capped := minDuration(delay, c.cfg.ReconnectMaxBackoff)
		jitterAmount := time.Duration(float64(capped) * c.cfg.ReconnectJitter * c.cfg.Random())
		c.cfg.Sleep(capped + jitterAmount)
		delay = minDuration(maxDuration(capped*2, c.cfg.ReconnectInitialBackoff), c.cfg.ReconnectMaxBackoff)
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// SendRaw sends a pre-rendered line. If waitForAck, it blocks for the
// next Ok/Error ack (up to ackTimeout, or CommandTimeout if zero) and
// returns it; an Error ack surfaces as *CommandRejectedError.
func (c *Client) SendRaw(ctx context.Context, line string, waitForAck bool, ackTimeout time.Duration) (protocol.Message, error) {
	c.mu.Lock()
	tr := c.tr
	c.mu.Unlock()
	if tr == nil {
		return nil, ErrNotConnected
	}

	var waiter chan ackResult

	c.cmdMu.Lock()
	if waitForAck {
		waiter = make(chan ackResult, 1)
		c.ackMu.Lock()
		c.ackWaiters = append(c.ackWaiters, waiter)
		c.ackMu.Unlock()
	}
	err := tr.SendLine(line, c.cfg.CommandTimeout)
	c.cmdMu.Unlock()

	if err != nil {
		if waiter != nil {
			c.removeAckWaiter(waiter)
		}
		return nil, err
	}

	if c.cfg.Metrics != nil {
		c.cfg.Metrics.IncCommandsSent()
	}

	if waiter == nil {
		return nil, nil
	}

	if ackTimeout == 0 {
		ackTimeout = c.cfg.CommandTimeout
	}
	timer := time.NewTimer(ackTimeout)
	defer timer.Stop()

	select {
	case res := <-waiter:
		if res.err != nil {
			if c.cfg.Metrics != nil {
				c.cfg.Metrics.IncCommandAcks("not_connected")
			}
			return nil, res.err
		}
		if errMsg, ok := res.msg.(protocol.Error); ok {
			if c.cfg.Metrics != nil {
				c.cfg.Metrics.IncCommandAcks("error")
			}
			return nil, &CommandRejectedError{Command: line, Reason: errMsg.Text}
		}
		if c.cfg.Metrics != nil {
			c.cfg.Metrics.IncCommandAcks("ok")
		}
		return res.msg, nil
	case <-timer.C:
		c.removeAckWaiter(waiter)
		return nil, ErrAckTimeout
	case <-ctx.Done():
		c.removeAckWaiter(waiter)
		return nil, ctx.Err()
	}
}

// Command builds "verb args..." and sends it through SendRaw.
func (c *Client) Command(ctx context.Context, waitForAck bool, ackTimeout time.Duration, verb string, args ...protocol.Arg) (protocol.Message, error) {
	return c.SendRaw(ctx, protocol.Build(verb, args...), waitForAck, ackTimeout)
}
