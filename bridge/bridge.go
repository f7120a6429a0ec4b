/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package bridge is a thin, optional mapping layer for integrations (e.g.
// a Home Assistant-style coordinator) that consume projector.Snapshot and
// projector.AdapterEvent without pulling a home-automation framework into
// envygo itself. Nothing here is required by client or projector.
package bridge

import (
	"github.com/binarylogic/envygo/projector"
)

// CoordinatorPayload builds the flat map an integration's data-update
// coordinator would store, one entry per field an integration is likely
// to surface as an entity or attribute.
func CoordinatorPayload(snapshot projector.Snapshot) map[string]any {
	options := make(map[string]any, len(snapshot.Options))
	for _, row := range snapshot.Options {
		options[row.ID] = map[string]any{
			"type":      row.Type,
			"current":   row.Current,
			"effective": row.Effective,
		}
	}

	return map[string]any{
		"available":             snapshot.Synced,
		"power_state":           powerState(snapshot),
		"version":               snapshot.Version,
		"signal_present":        snapshot.SignalPresent,
		"mac_address":           snapshot.MacAddress,
		"active_profile_group":  snapshot.ActiveProfileGroup,
		"active_profile_index":  snapshot.ActiveProfileIndex,
		"current_menu":          snapshot.CurrentMenu,
		"aspect_ratio_mode":     snapshot.AspectRatioMode,
		"tone_map_enabled":      snapshot.ToneMapEnabled,
		"temperatures":          snapshot.Temperatures,
		"settings_pages":        kvMap(snapshot.SettingsPages),
		"config_pages":          kvMap(snapshot.ConfigPages),
		"profile_groups":        kvMap(snapshot.ProfileGroups),
		"profiles":              kvMap(snapshot.Profiles),
		"options":               options,
		"last_system_action":    snapshot.LastSystemAction,
		"last_button_event":             snapshot.LastButtonEvent,
		"last_inherit_option_path":      snapshot.LastInheritOptionPath,
		"last_inherit_option_effective": snapshot.LastInheritOptionEffective,
		"last_uploaded_3dlut":           snapshot.LastUploaded3DLUT,
		"last_renamed_3dlut":            snapshot.LastRenamed3DLUT,
		"last_deleted_3dlut":            snapshot.LastDeleted3DLUT,
		"last_store_settings":           snapshot.LastStoreSettings,
		"last_restore_settings":         snapshot.LastRestoreSettings,
		"temporary_reset_count":         snapshot.TemporaryResetCount,
		"display_changed_count":         snapshot.DisplayChangedCount,
		"settings_upload_count":         snapshot.SettingsUploadCount,
	}
}

func powerState(snapshot projector.Snapshot) string {
	switch {
	case snapshot.IsOn != nil && *snapshot.IsOn:
		return "on"
	case snapshot.Standby != nil && *snapshot.Standby:
		return "standby"
	case snapshot.IsOn != nil && !*snapshot.IsOn:
		return "off"
	default:
		return "unknown"
	}
}

func kvMap(rows []projector.KV) map[string]string {
	m := make(map[string]string, len(rows))
	for _, kv := range rows {
		m[kv.Key] = kv.Value
	}
	return m
}

// EventName maps an AdapterEvent's Kind to a namespaced bus event name.
func EventName(kind string) string {
	return "madvr_envy." + kind
}
