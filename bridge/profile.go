/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package bridge

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/binarylogic/envygo/projector"
)

// profileIDPattern matches a composite profile identifier with either
// separator the device is known to emit: "group_index" or "group:index".
var profileIDPattern = regexp.MustCompile(`^(.+?)[_:](\d+)$`)

// ParseProfileID splits a composite profile identifier into its group and
// index. If id has neither separator but is purely numeric, fallbackGroup
// supplies the group. ok is false if neither form matches.
func ParseProfileID(id string, fallbackGroup string) (group string, index int, ok bool) {
	if m := profileIDPattern.FindStringSubmatch(id); m != nil {
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return "", 0, false
		}
		return m[1], idx, true
	}

	if fallbackGroup != "" && isDigits(id) {
		idx, err := strconv.Atoi(id)
		if err != nil {
			return "", 0, false
		}
		return fallbackGroup, idx, true
	}

	return "", 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ProfileOption is one entry in a sorted profile picker list: a
// human-readable label plus the group/index it activates.
type ProfileOption struct {
	Option       string
	GroupID      string
	ProfileIndex int
}

// BuildProfileOptions builds a case-insensitively sorted picker list from
// a snapshot's profile and profile-group tables. fallbackGroup supplies
// the group for bare-numeric profile ids (see ParseProfileID).
func BuildProfileOptions(snapshot projector.Snapshot, fallbackGroup string) []ProfileOption {
	groupNames := kvMap(snapshot.ProfileGroups)

	var options []ProfileOption
	for _, row := range snapshot.Profiles {
		group, index, ok := ParseProfileID(row.Key, fallbackGroup)
		if !ok {
			continue
		}

		label := group
		if name, found := groupNames[group]; found {
			label = name
		}

		options = append(options, ProfileOption{
			Option:       label + ": " + row.Value,
			GroupID:      group,
			ProfileIndex: index,
		})
	}

	sort.Slice(options, func(i, j int) bool {
		return strings.ToLower(options[i].Option) < strings.ToLower(options[j].Option)
	})
	return options
}
