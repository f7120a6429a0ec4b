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

func TestParseProfileIDUnderscoreSeparator(t *testing.T) {
	group, index, ok := ParseProfileID("1_2", "")
	require.True(t, ok)
	require.Equal(t, "1", group)
	require.Equal(t, 2, index)
}

func TestParseProfileIDColonSeparator(t *testing.T) {
	group, index, ok := ParseProfileID("source:5", "")
	require.True(t, ok)
	require.Equal(t, "source", group)
	require.Equal(t, 5, index)
}

func TestParseProfileIDBareNumericUsesFallback(t *testing.T) {
	group, index, ok := ParseProfileID("7", "fallback")
	require.True(t, ok)
	require.Equal(t, "fallback", group)
	require.Equal(t, 7, index)
}

func TestParseProfileIDRejectsGarbage(t *testing.T) {
	_, _, ok := ParseProfileID("bad-value", "fallback")
	require.False(t, ok)
}

func TestBuildProfileOptionsSortedCaseFold(t *testing.T) {
	snap := projector.Snapshot{
		ProfileGroups: []projector.KV{{Key: "1", Value: "Cinema"}, {Key: "2", Value: "Sports"}},
		Profiles: []projector.KV{
			{Key: "1_2", Value: "Night"},
			{Key: "1_1", Value: "Day"},
			{Key: "2_1", Value: "Game"},
		},
	}

	options := BuildProfileOptions(snap, "1")
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Option
	}
	require.Equal(t, []string{"Cinema: Day", "Cinema: Night", "Sports: Game"}, labels)

	require.Equal(t, "1", options[0].GroupID)
	require.Equal(t, 1, options[0].ProfileIndex)
	require.Equal(t, "1", options[1].GroupID)
	require.Equal(t, 2, options[1].ProfileIndex)
	require.Equal(t, "2", options[2].GroupID)
	require.Equal(t, 1, options[2].ProfileIndex)
}
