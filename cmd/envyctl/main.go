/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Command envyctl is a demo/operator CLI exercising the envygo client
// end-to-end: it connects, prints one line per received message, and can
// enumerate device state or dump a point-in-time snapshot to disk.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/binarylogic/envygo/client"
	"github.com/binarylogic/envygo/internal/envylog"
	"github.com/binarylogic/envygo/internal/metrics"
	"github.com/binarylogic/envygo/projector"
	"github.com/binarylogic/envygo/protocol"
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to an ini config file (see config.go)")
		host         = flag.String("host", "", "device host/IP, overrides config")
		port         = flag.Int("port", 0, "device port, overrides config (default 44077)")
		debugAddr    = flag.String("debug-addr", "", "if set, serve /healthz and /metrics here")
		dumpSnapshot = flag.String("dump-snapshot", "", "on SIGUSR1, atomically write the current snapshot as JSON to this path")
		enumVerb     = flag.String("enum", "", "one of profile-groups|settings-pages|config-pages to enumerate once and exit")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envyctl: loading config: %v\n", err)
		os.Exit(1)
	}

	h := cfg.Connection.Host
	if *host != "" {
		h = *host
	}
	p := cfg.Connection.Port
	if *port != 0 {
		p = *port
	}
	if h == "" {
		fmt.Fprintln(os.Stderr, "envyctl: host is required (--host or [connection] host=)")
		os.Exit(1)
	}

	sessionID := uuid.New().String()
	logger := envylog.WithKV(envylog.New(os.Stderr), envylog.KV("session", sessionID))

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	c := client.New(client.Config{
		Host:                    h,
		Port:                    p,
		ConnectTimeout:          parseDurationOrDefault(cfg.Connection.ConnectTimeout, 3*time.Second),
		CommandTimeout:          parseDurationOrDefault(cfg.Connection.CommandTimeout, 2*time.Second),
		ReadTimeout:             parseDurationOrDefault(cfg.Connection.ReadTimeout, 30*time.Second),
		ReconnectInitialBackoff: parseDurationOrDefault(cfg.Reconnect.InitialBackoff, time.Second),
		ReconnectMaxBackoff:     parseDurationOrDefault(cfg.Reconnect.MaxBackoff, 30*time.Second),
		ReconnectJitter:         cfg.Reconnect.Jitter,
		DisableAutoReconnect:    cfg.Reconnect.Disabled,
		Logger:                  logger.Logger,
		Metrics:                 rec,
	})

	c.RegisterCallback(func(event string, msg protocol.Message) {
		switch event {
		case client.EventConnected:
			logger.Info("connected")
		case client.EventDisconnected:
			logger.Info("disconnected")
		case client.EventMessage:
			logger.Info("received", envylog.KV("message", fmt.Sprintf("%#v", msg)))
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	debugAddrVal := cfg.Debug.Addr
	if *debugAddr != "" {
		debugAddrVal = *debugAddr
	}
	if debugAddrVal != "" {
		go serveDebug(debugAddrVal, reg, c, logger.Logger)
	}

	if err := c.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "envyctl: connect: %v\n", err)
		os.Exit(1)
	}
	defer c.Stop()

	if *dumpSnapshot != "" {
		go dumpSnapshotOnSignal(ctx, c, *dumpSnapshot, logger.Logger)
	}

	if *enumVerb != "" {
		runEnumOnce(ctx, c, *enumVerb)
		return
	}

	if err := c.WaitSynced(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "envyctl: waiting for sync: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("envyctl: connected and synced, press Ctrl-C to exit")

	<-ctx.Done()
}

func serveDebug(addr string, reg *prometheus.Registry, c *client.Client, logger *envylog.Logger) {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if c.Connected() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("disconnected"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	logger.Infof("debug server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Errorf("debug server exited: %v", err)
	}
}

func dumpSnapshotOnSignal(ctx context.Context, c *client.Client, path string, logger *envylog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigCh:
			if err := writeSnapshot(c, path); err != nil {
				logger.Errorf("dump snapshot: %v", err)
			}
		}
	}
}

func writeSnapshot(c *client.Client, path string) error {
	snap := projector.FromState(c.State)
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending snapshot file: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return pending.CloseAtomicallyReplace()
}

func runEnumOnce(ctx context.Context, c *client.Client, verb string) {
	if err := c.WaitSyncedTimeout(10 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "envyctl: waiting for sync: %v\n", err)
		os.Exit(1)
	}

	const timeout = 5 * time.Second
	switch verb {
	case "profile-groups":
		groups, err := c.EnumProfileGroupsCollect(ctx, timeout)
		exitOnErr(err)
		for _, g := range groups {
			fmt.Printf("%s\t%s\n", g.GroupID, g.Name)
		}
	case "settings-pages":
		pages, err := c.EnumSettingPagesCollect(ctx, timeout)
		exitOnErr(err)
		for _, p := range pages {
			fmt.Printf("%s\t%s\n", p.PageID, p.Name)
		}
	case "config-pages":
		pages, err := c.EnumConfigPagesCollect(ctx, timeout)
		exitOnErr(err)
		for _, p := range pages {
			fmt.Printf("%s\t%s\n", p.PageID, p.Name)
		}
	default:
		fmt.Fprintf(os.Stderr, "envyctl: unknown --enum value %q\n", verb)
		os.Exit(1)
	}
}

func exitOnErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "envyctl: %v\n", err)
		os.Exit(1)
	}
}
