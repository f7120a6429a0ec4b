/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package envylog provides the structured logger the client core and
// cmd/envyctl write through. Messages are rendered as RFC5424 syslog
// records so they compose with existing log shipping without a bespoke
// format to parse.
package envylog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	OFF
)

func (l Level) priority() rfc5424.Priority {
	switch l {
	case DEBUG:
		return rfc5424.User | rfc5424.Debug
	case INFO:
		return rfc5424.User | rfc5424.Info
	case WARN:
		return rfc5424.User | rfc5424.Warning
	case ERROR:
		return rfc5424.User | rfc5424.Error
	default:
		return rfc5424.User | rfc5424.Info
	}
}

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "OFF"
	}
}

const defaultMsgID = `envygo`

// Logger is a level-filtered, mutex-guarded writer of RFC5424 records. It
// implements the small Debugf/Infof/Warnf/Errorf surface the client core
// depends on, plus a KV-style variant for structured fields.
type Logger struct {
	mtx      sync.Mutex
	wtr      io.Writer
	lvl      Level
	hostname string
	appname  string
}

// New returns a logger at INFO level writing to wtr.
func New(wtr io.Writer) *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		wtr:      wtr,
		lvl:      INFO,
		hostname: hostname,
		appname:  "envygo",
	}
}

// NewDiscard returns a logger that drops every record; useful as a
// default when a caller does not supply one.
func NewDiscard() *Logger {
	return New(io.Discard)
}

func (l *Logger) SetLevel(lvl Level) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.lvl = lvl
}

func (l *Logger) Debugf(f string, args ...any) { l.outputf(DEBUG, f, args...) }
func (l *Logger) Infof(f string, args ...any)  { l.outputf(INFO, f, args...) }
func (l *Logger) Warnf(f string, args ...any)  { l.outputf(WARN, f, args...) }
func (l *Logger) Errorf(f string, args ...any) { l.outputf(ERROR, f, args...) }

func (l *Logger) Debug(msg string, sds ...rfc5424.SDParam) { l.output(DEBUG, msg, sds...) }
func (l *Logger) Info(msg string, sds ...rfc5424.SDParam)  { l.output(INFO, msg, sds...) }
func (l *Logger) Warn(msg string, sds ...rfc5424.SDParam)  { l.output(WARN, msg, sds...) }
func (l *Logger) Error(msg string, sds ...rfc5424.SDParam) { l.output(ERROR, msg, sds...) }

func (l *Logger) outputf(lvl Level, f string, args ...any) {
	l.output(lvl, fmt.Sprintf(f, args...))
}

func (l *Logger) output(lvl Level, msg string, sds ...rfc5424.SDParam) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.lvl == OFF || lvl < l.lvl {
		return
	}
	m := rfc5424.Message{
		Priority:  lvl.priority(),
		Timestamp: time.Now(),
		Hostname:  l.hostname,
		AppName:   l.appname,
		MessageID: defaultMsgID,
		Message:   []byte(msg),
	}
	if len(sds) > 0 {
		m.StructuredData = []rfc5424.StructuredData{{ID: "envy@1", Parameters: sds}}
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return
	}
	io.WriteString(l.wtr, strings.TrimRight(string(b), "\n")+"\n")
}

// KV is a key-value pair shorthand for building an rfc5424.SDParam. value
// is stringified with fmt unless it is already a string.
func KV(key string, value any) rfc5424.SDParam {
	if s, ok := value.(string); ok {
		return rfc5424.SDParam{Name: key, Value: s}
	}
	return rfc5424.SDParam{Name: key, Value: fmt.Sprintf("%v", value)}
}

// KVErr is shorthand for KV("error", err).
func KVErr(err error) rfc5424.SDParam {
	return KV("error", err)
}

// KVLogger wraps a Logger with a fixed set of structured fields (e.g.
// host/port) that are appended to every structured call it makes.
type KVLogger struct {
	*Logger
	sds []rfc5424.SDParam
}

// WithKV returns a KVLogger over l carrying the given pinned fields.
func WithKV(l *Logger, sds ...rfc5424.SDParam) *KVLogger {
	return &KVLogger{Logger: l, sds: sds}
}

func (kvl *KVLogger) Debug(msg string, sds ...rfc5424.SDParam) {
	kvl.Logger.output(DEBUG, msg, append(append([]rfc5424.SDParam{}, kvl.sds...), sds...)...)
}

func (kvl *KVLogger) Info(msg string, sds ...rfc5424.SDParam) {
	kvl.Logger.output(INFO, msg, append(append([]rfc5424.SDParam{}, kvl.sds...), sds...)...)
}

func (kvl *KVLogger) Warn(msg string, sds ...rfc5424.SDParam) {
	kvl.Logger.output(WARN, msg, append(append([]rfc5424.SDParam{}, kvl.sds...), sds...)...)
}

func (kvl *KVLogger) Error(msg string, sds ...rfc5424.SDParam) {
	kvl.Logger.output(ERROR, msg, append(append([]rfc5424.SDParam{}, kvl.sds...), sds...)...)
}
