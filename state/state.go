/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package state holds the canonical, mutable projection of everything a
// madVR Envy connection has told us: EnvyState folds every inbound
// protocol.Message into one struct, exclusively owned by the connection's
// read loop (see client.Client).
package state

import (
	"fmt"

	"github.com/binarylogic/envygo/protocol"
)

// ButtonEvent is the last remote-control activity seen on the connection.
type ButtonEvent struct {
	Kind   string // "press" or "hold"
	Button string
}

// EnvyState is the single canonical mutable state for one connection. It
// is exclusively owned by the read loop that calls Apply; readers other
// than that loop should take a Snapshot instead of reading State directly.
type EnvyState struct {
	Version        *string
	IsOn           *bool
	Standby        *bool
	SignalPresent  *bool
	ToneMapEnabled *bool
	MacAddress     *string
	seenWelcome    bool

	IncomingSignal  *protocol.IncomingSignalInfo
	OutgoingSignal  *protocol.OutgoingSignalInfo
	AspectRatio     *protocol.AspectRatio
	MaskingRatio    *protocol.MaskingRatio
	Temperatures    *protocol.Temperatures
	CurrentMenu     *string
	AspectRatioMode *string
	LastButtonEvent *ButtonEvent

	SettingsPages map[string]string
	ConfigPages   map[string]string
	ProfileGroups map[string]string
	Profiles      map[string]string
	Options       map[string]protocol.Option

	ActiveProfileGroup *string
	ActiveProfileIndex *int
	LastOptionChange   *protocol.ChangeOption
	LastInheritOption  *protocol.InheritOption
	LastUploaded3DLUT  *string
	LastRenamed3DLUT   *[2]string
	LastDeleted3DLUT   *string
	LastStoreSettings  *[2]string
	LastRestoreSettings *string
	LastSystemAction   *string

	TemporaryResetCount int
	DisplayChangedCount int
	SettingsUploadCount int

	FirmwareUpdatePending bool
	LastMissingHeartbeat  bool
}

// New returns a freshly reset EnvyState, as if just connected.
func New() *EnvyState {
	s := &EnvyState{}
	s.ResetRuntimeValues()
	return s
}

// Synced reports whether a Welcome has been observed on the current
// connection. It is derived, not stored independently of seenWelcome.
func (s *EnvyState) Synced() bool {
	return s.seenWelcome
}

// ResetRuntimeValues restores every field to its connect-time initial
// value, including counters (they are per-connection, not lifetime). It
// does not touch configuration — host/port/timeouts live on the client.
func (s *EnvyState) ResetRuntimeValues() {
	s.Version = nil
	s.IsOn = nil
	s.Standby = nil
	s.SignalPresent = nil
	s.ToneMapEnabled = nil
	s.MacAddress = nil
	s.seenWelcome = false

	s.IncomingSignal = nil
	s.OutgoingSignal = nil
	s.AspectRatio = nil
	s.MaskingRatio = nil
	s.Temperatures = nil
	s.CurrentMenu = nil
	s.AspectRatioMode = nil
	s.LastButtonEvent = nil

	s.SettingsPages = map[string]string{}
	s.ConfigPages = map[string]string{}
	s.ProfileGroups = map[string]string{}
	s.Profiles = map[string]string{}
	s.Options = map[string]protocol.Option{}

	s.ActiveProfileGroup = nil
	s.ActiveProfileIndex = nil
	s.LastOptionChange = nil
	s.LastInheritOption = nil
	s.LastUploaded3DLUT = nil
	s.LastRenamed3DLUT = nil
	s.LastDeleted3DLUT = nil
	s.LastStoreSettings = nil
	s.LastRestoreSettings = nil
	s.LastSystemAction = nil

	s.TemporaryResetCount = 0
	s.DisplayChangedCount = 0
	s.SettingsUploadCount = 0

	s.FirmwareUpdatePending = false
	s.LastMissingHeartbeat = false
}

func ptr[T any](v T) *T { return &v }

// Apply folds one message into the state. It is a pure fold: message
// variants not mentioned below are no-ops for state (Ok, Error, and any
// Unknown line).
func (s *EnvyState) Apply(msg protocol.Message) {
	switch m := msg.(type) {
	case protocol.Welcome:
		s.Version = ptr(m.Version)
		s.seenWelcome = true
		s.IsOn = ptr(true)
		s.Standby = ptr(false)
	case protocol.Standby:
		s.IsOn = ptr(false)
		s.Standby = ptr(true)
	case protocol.PowerOff:
		s.IsOn = ptr(false)
		s.Standby = ptr(false)
	case protocol.Restart:
		s.LastSystemAction = ptr("Restart")
	case protocol.ReloadSoftware:
		s.LastSystemAction = ptr("ReloadSoftware")
	case protocol.NoSignal:
		s.SignalPresent = ptr(false)
	case protocol.OpenMenu:
		s.CurrentMenu = ptr(m.Name)
	case protocol.CloseMenu:
		s.CurrentMenu = nil
	case protocol.KeyPress:
		s.LastButtonEvent = &ButtonEvent{Kind: "press", Button: m.Button}
	case protocol.KeyHold:
		s.LastButtonEvent = &ButtonEvent{Kind: "hold", Button: m.Button}
	case protocol.SetAspectRatioMode:
		s.AspectRatioMode = ptr(m.Mode)
	case protocol.MacAddress:
		s.MacAddress = ptr(m.MAC)
	case protocol.Temperatures:
		s.Temperatures = &m
	case protocol.IncomingSignalInfo:
		s.IncomingSignal = &m
		s.SignalPresent = ptr(true)
	case protocol.OutgoingSignalInfo:
		s.OutgoingSignal = &m
	case protocol.AspectRatio:
		s.AspectRatio = &m
	case protocol.MaskingRatio:
		s.MaskingRatio = &m
	case protocol.ActiveProfile:
		s.ActiveProfileGroup = ptr(m.Group)
		s.ActiveProfileIndex = ptr(m.Index)
	case protocol.ActivateProfile:
		s.ActiveProfileGroup = ptr(m.Group)
		s.ActiveProfileIndex = ptr(m.Index)
	case protocol.CreateProfileGroup:
		s.ProfileGroups[m.GroupID] = m.Name
	case protocol.RenameProfileGroup:
		s.ProfileGroups[m.GroupID] = m.Name
	case protocol.ProfileGroup:
		s.ProfileGroups[m.GroupID] = m.Name
	case protocol.DeleteProfileGroup:
		delete(s.ProfileGroups, m.GroupID)
	case protocol.Profile:
		s.Profiles[m.ProfileID] = m.Name
	case protocol.CreateProfile:
		s.Profiles[profileKey(m.Group, m.Index)] = m.Name
	case protocol.RenameProfile:
		s.Profiles[profileKey(m.Group, m.Index)] = m.Name
	case protocol.DeleteProfile:
		delete(s.Profiles, profileKey(m.Group, m.Index))
	case protocol.SettingPage:
		s.SettingsPages[m.PageID] = m.Name
	case protocol.ConfigPage:
		s.ConfigPages[m.PageID] = m.Name
	case protocol.Option:
		s.Options[m.ID] = m
	case protocol.ChangeOption:
		s.LastOptionChange = &m
		s.Options[m.IDPath] = protocol.Option{
			Type:      m.Type,
			ID:        m.IDPath,
			Current:   m.Current,
			Effective: m.Effective,
		}
	case protocol.InheritOption:
		s.LastInheritOption = &m
	case protocol.ResetTemporary:
		s.TemporaryResetCount++
	case protocol.Upload3DLUTFile:
		s.LastUploaded3DLUT = ptr(m.Filename)
	case protocol.Rename3DLUTFile:
		s.LastRenamed3DLUT = &[2]string{m.OldFilename, m.NewFilename}
	case protocol.Delete3DLUTFile:
		s.LastDeleted3DLUT = ptr(m.Filename)
	case protocol.UploadSettingsFile:
		s.SettingsUploadCount++
	case protocol.StoreSettings:
		s.LastStoreSettings = &[2]string{m.Target, m.StorageName}
	case protocol.RestoreSettings:
		s.LastRestoreSettings = ptr(m.Target)
	case protocol.Toggle:
		s.LastSystemAction = ptr("Toggle:" + m.Option)
	case protocol.ToneMapOn:
		s.ToneMapEnabled = ptr(true)
	case protocol.ToneMapOff:
		s.ToneMapEnabled = ptr(false)
	case protocol.DisplayChanged:
		s.DisplayChangedCount++
	case protocol.RefreshLicenseInfo:
		s.LastSystemAction = ptr("RefreshLicenseInfo")
	case protocol.Force1080p60Output:
		s.LastSystemAction = ptr("Force1080p60Output")
	case protocol.Hotplug:
		s.LastSystemAction = ptr("Hotplug")
	case protocol.FirmwareUpdate:
		s.FirmwareUpdatePending = true
	case protocol.MissingHeartbeat:
		s.LastMissingHeartbeat = true
	case protocol.AddProfileToPage:
		s.LastSystemAction = ptr("AddProfileToPage")
	case protocol.RemoveProfileFromPage:
		s.LastSystemAction = ptr("RemoveProfileFromPage")
	}
}

func profileKey(group string, index int) string {
	return fmt.Sprintf("%s_%d", group, index)
}
