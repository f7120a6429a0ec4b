/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package envylog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetLevel(WARN)

	l.Infof("connected to %s", "envy.local")
	require.Empty(t, buf.String())

	l.Errorf("read failed: %v", "boom")
	require.Contains(t, buf.String(), "read failed")
}

func TestKVLoggerPinsFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	kv := WithKV(l, KV("host", "envy.local"), KV("port", 44077))

	kv.Info("connecting")
	out := buf.String()
	require.True(t, strings.Contains(out, "connecting"))
	require.Contains(t, out, `host="envy.local"`)
	require.Contains(t, out, `port="44077"`)
}

func TestDiscardNeverPanics(t *testing.T) {
	l := NewDiscard()
	require.NotPanics(t, func() {
		l.Debugf("x")
		l.Error("y", KVErr(nil))
	})
}
