/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package projector

import (
	"reflect"

	"github.com/binarylogic/envygo/state"
)

// StateDelta is one changed field between two successive snapshots.
type StateDelta struct {
	Field    string
	Old, New any
}

// AdapterEvent is a high-level semantic change derived from a snapshot
// pair — coarser-grained than a field delta, meant for integrations that
// want "the button was pressed" rather than "lastButtonEvent changed".
type AdapterEvent struct {
	Kind    string
	Payload map[string]any
}

// EnvyStateAdapter tracks the last snapshot it produced so Update can
// diff against it. It holds no reference to the Client; callers drive it
// from a received_message callback (see client.RegisterAdapterCallback).
type EnvyStateAdapter struct {
	last    Snapshot
	hasLast bool
}

// NewEnvyStateAdapter returns an adapter with no prior snapshot.
func NewEnvyStateAdapter() *EnvyStateAdapter {
	return &EnvyStateAdapter{}
}

// HasSnapshot reports whether Update has produced a snapshot yet. The
// client core uses this to decide whether the next Update's emission is
// the "initial" one.
func (a *EnvyStateAdapter) HasSnapshot() bool {
	return a.hasLast
}

// Update builds a fresh snapshot from s, diffs it against the previous
// one (if any), and returns the snapshot plus field deltas and semantic
// events. The very first call returns no deltas/events — the caller is
// responsible for synthesizing an "initial" event on that call.
func (a *EnvyStateAdapter) Update(s *state.EnvyState) (Snapshot, []StateDelta, []AdapterEvent) {
	snapshot := FromState(s)
	previous, hadPrevious := a.last, a.hasLast
	a.last, a.hasLast = snapshot, true

	if !hadPrevious {
		return snapshot, nil, nil
	}

	return snapshot, buildDeltas(previous, snapshot), buildEvents(previous, snapshot)
}

var snapshotFields = reflect.VisibleFields(reflect.TypeOf(Snapshot{}))

func buildDeltas(previous, current Snapshot) []StateDelta {
	var deltas []StateDelta
	pv := reflect.ValueOf(previous)
	cv := reflect.ValueOf(current)
	for _, f := range snapshotFields {
		oldValue := pv.FieldByIndex(f.Index).Interface()
		newValue := cv.FieldByIndex(f.Index).Interface()
		if !reflect.DeepEqual(oldValue, newValue) {
			deltas = append(deltas, StateDelta{Field: f.Name, Old: oldValue, New: newValue})
		}
	}
	return deltas
}

func counterEvent(kind string, oldValue, newValue int) *AdapterEvent {
	if newValue <= oldValue {
		return nil
	}
	return &AdapterEvent{Kind: kind, Payload: map[string]any{
		"count":     newValue,
		"increment": newValue - oldValue,
	}}
}

func changeEvent(kind string, oldValue, newValue any, payloadKey string) *AdapterEvent {
	if newValue == nil || reflect.DeepEqual(oldValue, newValue) {
		return nil
	}
	if v := reflect.ValueOf(newValue); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	return &AdapterEvent{Kind: kind, Payload: map[string]any{payloadKey: newValue}}
}

func buildEvents(previous, current Snapshot) []AdapterEvent {
	var events []AdapterEvent
	add := func(e *AdapterEvent) {
		if e != nil {
			events = append(events, *e)
		}
	}

	add(counterEvent("temporary_reset", previous.TemporaryResetCount, current.TemporaryResetCount))
	add(counterEvent("display_changed", previous.DisplayChangedCount, current.DisplayChangedCount))
	add(counterEvent("settings_uploaded", previous.SettingsUploadCount, current.SettingsUploadCount))

	add(changeEvent("system_action", previous.LastSystemAction, current.LastSystemAction, "action"))
	add(changeEvent("button", previous.LastButtonEvent, current.LastButtonEvent, "button"))
	add(changeEvent("option_inherited", previous.LastInheritOptionPath, current.LastInheritOptionPath, "path"))
	add(changeEvent("lut_uploaded", previous.LastUploaded3DLUT, current.LastUploaded3DLUT, "filename"))
	add(changeEvent("lut_renamed", previous.LastRenamed3DLUT, current.LastRenamed3DLUT, "rename"))
	add(changeEvent("lut_deleted", previous.LastDeleted3DLUT, current.LastDeleted3DLUT, "filename"))
	add(changeEvent("settings_stored", previous.LastStoreSettings, current.LastStoreSettings, "store"))
	add(changeEvent("settings_restored", previous.LastRestoreSettings, current.LastRestoreSettings, "target"))

	return events
}
