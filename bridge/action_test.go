/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionNamesSorted(t *testing.T) {
	require.Equal(t, []string{
		"hotplug",
		"power_off",
		"reload_software",
		"restart",
		"standby",
		"tone_map_off",
		"tone_map_on",
	}, ActionNames())
}

func TestResolveActionNormalizesWhitespaceAndCase(t *testing.T) {
	a, ok := ResolveAction(" Restart ")
	require.True(t, ok)
	require.Equal(t, ActionRestart, a)
}

func TestResolveActionRejectsUnknown(t *testing.T) {
	_, ok := ResolveAction("unknown_action")
	require.False(t, ok)
}
