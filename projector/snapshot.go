/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package projector builds immutable, structurally comparable snapshots
// of state.EnvyState and derives field deltas and high-level events
// between successive snapshots — the layer integrations (e.g. the
// bridge package) poll instead of reading EnvyState directly.
package projector

import (
	"sort"

	"github.com/binarylogic/envygo/protocol"
	"github.com/binarylogic/envygo/state"
)

// KV is one entry of a flattened id->value mapping, sorted by Key.
type KV struct {
	Key   string
	Value string
}

// IncomingSignal mirrors protocol.IncomingSignalInfo's nine string fields
// flattened to a fixed-arity tuple for structural equality.
type IncomingSignal [9]string

// OutgoingSignal mirrors protocol.OutgoingSignalInfo's eight fields.
type OutgoingSignal [8]string

// AspectRatio flattens protocol.AspectRatio.
type AspectRatio struct {
	Resolution   string
	DecimalRatio float64
	IntegerRatio int
	Name         string
}

// MaskingRatio flattens protocol.MaskingRatio.
type MaskingRatio struct {
	Resolution   string
	DecimalRatio float64
	IntegerRatio int
}

// Temperatures flattens the four always-present sensors; Extra readings
// are not part of the comparable snapshot.
type Temperatures struct {
	GPU, HDMIInput, CPU, Mainboard int
}

// OptionRow is one flattened (id, type, current, effective) entry.
type OptionRow struct {
	ID        string
	Type      string
	Current   protocol.OptionScalar
	Effective protocol.OptionScalar
}

// ButtonEvent mirrors state.ButtonEvent.
type ButtonEvent struct {
	Kind, Button string
}

// Snapshot is an immutable, comparable view of EnvyState. Every mapping
// becomes a key-sorted slice; every nested record becomes a flat value
// type so that two Snapshots can be compared with reflect.DeepEqual, or
// per-field via the deltas EnvyStateAdapter.Update returns.
type Snapshot struct {
	Synced bool

	Version        *string
	IsOn           *bool
	Standby        *bool
	SignalPresent  *bool
	MacAddress     *string
	ToneMapEnabled *bool

	ActiveProfileGroup *string
	ActiveProfileIndex *int
	CurrentMenu        *string
	AspectRatioMode    *string

	IncomingSignal *IncomingSignal
	OutgoingSignal *OutgoingSignal
	AspectRatio    *AspectRatio
	MaskingRatio   *MaskingRatio
	Temperatures   *Temperatures

	SettingsPages []KV
	ConfigPages   []KV
	ProfileGroups []KV
	Profiles      []KV
	Options       []OptionRow

	LastSystemAction           *string
	LastButtonEvent            *ButtonEvent
	LastInheritOptionPath      *string
	LastInheritOptionEffective protocol.OptionScalar
	LastUploaded3DLUT          *string
	LastRenamed3DLUT           *[2]string
	LastDeleted3DLUT           *string
	LastStoreSettings          *[2]string
	LastRestoreSettings        *string

	TemporaryResetCount int
	DisplayChangedCount int
	SettingsUploadCount int
}

func sortedKV(m map[string]string) []KV {
	out := make([]KV, 0, len(m))
	for k, v := range m {
		out = append(out, KV{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func strp(v string) *string { return &v }

// FromState builds a Snapshot from the current runtime state. Callers
// typically invoke this indirectly via EnvyStateAdapter.Update.
func FromState(s *state.EnvyState) Snapshot {
	snap := Snapshot{
		Synced:              s.Synced(),
		Version:             s.Version,
		IsOn:                s.IsOn,
		Standby:             s.Standby,
		SignalPresent:       s.SignalPresent,
		MacAddress:          s.MacAddress,
		ToneMapEnabled:      s.ToneMapEnabled,
		ActiveProfileGroup:  s.ActiveProfileGroup,
		ActiveProfileIndex:  s.ActiveProfileIndex,
		CurrentMenu:         s.CurrentMenu,
		AspectRatioMode:     s.AspectRatioMode,
		SettingsPages:       sortedKV(s.SettingsPages),
		ConfigPages:         sortedKV(s.ConfigPages),
		ProfileGroups:       sortedKV(s.ProfileGroups),
		Profiles:            sortedKV(s.Profiles),
		LastSystemAction:    s.LastSystemAction,
		LastUploaded3DLUT:   s.LastUploaded3DLUT,
		LastRenamed3DLUT:    s.LastRenamed3DLUT,
		LastDeleted3DLUT:    s.LastDeleted3DLUT,
		LastStoreSettings:   s.LastStoreSettings,
		LastRestoreSettings: s.LastRestoreSettings,
		TemporaryResetCount: s.TemporaryResetCount,
		DisplayChangedCount: s.DisplayChangedCount,
		SettingsUploadCount: s.SettingsUploadCount,
	}

	if s.LastButtonEvent != nil {
		snap.LastButtonEvent = &ButtonEvent{Kind: s.LastButtonEvent.Kind, Button: s.LastButtonEvent.Button}
	}

	if s.LastInheritOption != nil {
		snap.LastInheritOptionPath = strp(s.LastInheritOption.IDPath)
		snap.LastInheritOptionEffective = s.LastInheritOption.Effective
	}

	if s.IncomingSignal != nil {
		sig := s.IncomingSignal
		snap.IncomingSignal = &IncomingSignal{
			sig.Resolution, sig.FrameRate, sig.SignalType, sig.ColorSpace,
			sig.BitDepth, sig.HDRMode, sig.Colorimetry, sig.BlackLevels, sig.AspectRatio,
		}
	}
	if s.OutgoingSignal != nil {
		sig := s.OutgoingSignal
		snap.OutgoingSignal = &OutgoingSignal{
			sig.Resolution, sig.FrameRate, sig.SignalType, sig.ColorSpace,
			sig.BitDepth, sig.HDRMode, sig.Colorimetry, sig.BlackLevels,
		}
	}
	if s.AspectRatio != nil {
		ar := s.AspectRatio
		snap.AspectRatio = &AspectRatio{ar.Resolution, ar.DecimalRatio, ar.IntegerRatio, ar.Name}
	}
	if s.MaskingRatio != nil {
		mr := s.MaskingRatio
		snap.MaskingRatio = &MaskingRatio{mr.Resolution, mr.DecimalRatio, mr.IntegerRatio}
	}
	if s.Temperatures != nil {
		t := s.Temperatures
		snap.Temperatures = &Temperatures{t.GPU, t.HDMIInput, t.CPU, t.Mainboard}
	}

	if len(s.Options) > 0 {
		rows := make([]OptionRow, 0, len(s.Options))
		for id, opt := range s.Options {
			rows = append(rows, OptionRow{ID: id, Type: opt.Type, Current: opt.Current, Effective: opt.Effective})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
		snap.Options = rows
	}

	return snap
}
