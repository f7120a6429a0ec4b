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

	"github.com/binarylogic/envygo/projector"
)

func boolp(v bool) *bool { return &v }

func TestEventNameNamespacesKind(t *testing.T) {
	require.Equal(t, "madvr_envy.button", EventName("button"))
}

func TestCoordinatorPayloadPowerState(t *testing.T) {
	on := CoordinatorPayload(projector.Snapshot{IsOn: boolp(true)})
	require.Equal(t, "on", on["power_state"])

	standby := CoordinatorPayload(projector.Snapshot{IsOn: boolp(false), Standby: boolp(true)})
	require.Equal(t, "standby", standby["power_state"])

	off := CoordinatorPayload(projector.Snapshot{IsOn: boolp(false), Standby: boolp(false)})
	require.Equal(t, "off", off["power_state"])

	unknown := CoordinatorPayload(projector.Snapshot{})
	require.Equal(t, "unknown", unknown["power_state"])
}

func TestCoordinatorPayloadFlattensTables(t *testing.T) {
	snap := projector.Snapshot{
		Synced:        true,
		ProfileGroups: []projector.KV{{Key: "1", Value: "Cinema"}},
		Options: []projector.OptionRow{
			{ID: "temporary\\hdrNits", Type: "INTEGER", Current: int64(120), Effective: int64(121)},
		},
	}

	payload := CoordinatorPayload(snap)
	require.Equal(t, true, payload["available"])
	require.Equal(t, map[string]string{"1": "Cinema"}, payload["profile_groups"])

	options, ok := payload["options"].(map[string]any)
	require.True(t, ok)
	row, ok := options["temporary\\hdrNits"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "INTEGER", row["type"])
	require.Equal(t, int64(120), row["current"])
	require.Equal(t, int64(121), row["effective"])
}
