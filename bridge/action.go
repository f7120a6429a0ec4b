/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package bridge

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/binarylogic/envygo/client"
)

// Action is a named, integration-facing operation that maps to one
// client.Client command method.
type Action string

const (
	ActionStandby        Action = "standby"
	ActionPowerOff       Action = "power_off"
	ActionHotplug        Action = "hotplug"
	ActionRestart        Action = "restart"
	ActionReloadSoftware Action = "reload_software"
	ActionToneMapOn      Action = "tone_map_on"
	ActionToneMapOff     Action = "tone_map_off"
)

var actionNames = map[Action]struct{}{
	ActionStandby:        {},
	ActionPowerOff:       {},
	ActionHotplug:        {},
	ActionRestart:        {},
	ActionReloadSoftware: {},
	ActionToneMapOn:      {},
	ActionToneMapOff:     {},
}

// ActionNames returns every recognized action name, sorted, for use in a
// selector/validator.
func ActionNames() []string {
	names := make([]string, 0, len(actionNames))
	for a := range actionNames {
		names = append(names, string(a))
	}
	sort.Strings(names)
	return names
}

// ResolveAction normalizes name (trimmed, lowercased) and reports whether
// it names a recognized Action.
func ResolveAction(name string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(name)))
	_, ok := actionNames[a]
	return a, ok
}

// Invoke runs the action against c.
func (a Action) Invoke(ctx context.Context, c *client.Client) error {
	switch a {
	case ActionStandby:
		return c.Standby(ctx)
	case ActionPowerOff:
		return c.PowerOff(ctx)
	case ActionHotplug:
		return c.Hotplug(ctx)
	case ActionRestart:
		return c.Restart(ctx)
	case ActionReloadSoftware:
		return c.ReloadSoftware(ctx)
	case ActionToneMapOn:
		return c.ToneMapOn(ctx)
	case ActionToneMapOff:
		return c.ToneMapOff(ctx)
	default:
		return &UnknownActionError{Name: string(a)}
	}
}

// UnknownActionError is returned by Action.Invoke for an Action value not
// produced by ResolveAction.
type UnknownActionError struct{ Name string }

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("bridge: unknown action %q", e.Name)
}
