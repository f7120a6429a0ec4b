/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package main

import (
	"os"
	"time"

	"github.com/gravwell/gcfg"
)

// fileConfig is the on-disk shape of envyctl's ini config, e.g.:
//
//	[connection]
//	host = envy.local
//	port = 44077
//	connect-timeout = 3s
//	command-timeout = 2s
//	read-timeout = 30s
//
//	[reconnect]
//	initial-backoff = 1s
//	max-backoff = 30s
//	jitter = 0.2
//	disabled = false
//
//	[debug]
//	addr = 127.0.0.1:9090
type fileConfig struct {
	Connection struct {
		Host           string
		Port           int
		ConnectTimeout string `gcfg:"connect-timeout"`
		CommandTimeout string `gcfg:"command-timeout"`
		ReadTimeout    string `gcfg:"read-timeout"`
	}
	Reconnect struct {
		InitialBackoff string `gcfg:"initial-backoff"`
		MaxBackoff     string `gcfg:"max-backoff"`
		Jitter         float64
		Disabled       bool
	}
	Debug struct {
		Addr string
	}
}

// loadConfig reads an ini-style config file via gcfg. A zero fileConfig
// (every duration empty) is valid; callers apply their own defaults.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := gcfg.ReadStringInto(&cfg, string(content)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseDurationOrDefault(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
