/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package protocol

import (
	"regexp"
	"strconv"
	"strings"
)

var macPattern = regexp.MustCompile(`^[0-9A-Fa-f:-]{17}$`)

// Parse tokenizes and dispatches one line from the Envy stream into a
// typed Message. It never panics or returns an error: any line it cannot
// confidently parse comes back as Unknown{Raw: line}, preserving the raw
// text for forensic logging (see Message doc).
func Parse(line string) Message {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Unknown{Raw: line}
	}

	if strings.HasPrefix(trimmed, "WELCOME to Envy v") {
		return Welcome{Version: strings.TrimPrefix(trimmed, "WELCOME to Envy v")}
	}

	tokens := tokenize(trimmed)
	if len(tokens) == 0 {
		return Unknown{Raw: line}
	}
	head := tokens[0]

	switch head {
	case "OK":
		return Ok{}
	case "ERROR":
		return parseError(trimmed, line)
	case "Standby":
		return Standby{}
	case "PowerOff":
		return PowerOff{}
	case "Restart":
		return Restart{}
	case "ReloadSoftware":
		return ReloadSoftware{}
	case "NoSignal":
		return NoSignal{}
	case "OpenMenu":
		if len(tokens) != 2 {
			return Unknown{Raw: line}
		}
		return OpenMenu{Name: unquote(tokens[1])}
	case "CloseMenu":
		return CloseMenu{}
	case "KeyPress", "KeyHold":
		if len(tokens) != 2 {
			return Unknown{Raw: line}
		}
		if head == "KeyPress" {
			return KeyPress{Button: tokens[1]}
		}
		return KeyHold{Button: tokens[1]}
	case "SetAspectRatioMode":
		if len(tokens) != 2 {
			return Unknown{Raw: line}
		}
		return SetAspectRatioMode{Mode: tokens[1]}
	case "ActivateProfile":
		return parseProfileIndexPair(tokens, line, func(group string, idx int) Message {
			return ActivateProfile{Group: group, Index: idx}
		})
	case "ActiveProfile":
		return parseProfileIndexPair(tokens, line, func(group string, idx int) Message {
			return ActiveProfile{Group: group, Index: idx}
		})
	case "CreateProfileGroup":
		if len(tokens) < 3 {
			return Unknown{Raw: line}
		}
		return CreateProfileGroup{GroupID: tokens[1], Name: joinUnquoted(tokens[2:])}
	case "RenameProfileGroup":
		if len(tokens) < 3 {
			return Unknown{Raw: line}
		}
		return RenameProfileGroup{GroupID: tokens[1], Name: joinUnquoted(tokens[2:])}
	case "DeleteProfileGroup":
		if len(tokens) != 2 {
			return Unknown{Raw: line}
		}
		return DeleteProfileGroup{GroupID: tokens[1]}
	case "CreateProfile", "RenameProfile", "DeleteProfile":
		return parseProfileChange(head, tokens, line)
	case "AddProfileToPage", "RemoveProfileFromPage":
		if len(tokens) != 3 {
			return Unknown{Raw: line}
		}
		if head == "AddProfileToPage" {
			return AddProfileToPage{ProfileID: tokens[1], PageID: tokens[2]}
		}
		return RemoveProfileFromPage{ProfileID: tokens[1], PageID: tokens[2]}
	case "IncomingSignalInfo":
		return parseIncomingSignal(tokens, line)
	case "OutgoingSignalInfo":
		return parseOutgoingSignal(tokens, line)
	case "AspectRatio":
		return parseAspectRatio(tokens, line)
	case "MaskingRatio":
		return parseMaskingRatio(tokens, line)
	case "Temperatures":
		return parseTemperatures(tokens, line)
	case "MacAddress":
		return parseMacAddress(tokens, line)
	case "ChangeOption":
		return parseChangeOption(tokens, line)
	case "InheritOption":
		return parseInheritOption(tokens, line)
	case "ResetTemporary":
		return ResetTemporary{}
	case "Upload3DLUTFile":
		if len(tokens) < 2 {
			return Unknown{Raw: line}
		}
		return Upload3DLUTFile{Filename: joinUnquoted(tokens[1:])}
	case "Rename3DLUTFile":
		if len(tokens) != 3 {
			return Unknown{Raw: line}
		}
		return Rename3DLUTFile{OldFilename: unquote(tokens[1]), NewFilename: unquote(tokens[2])}
	case "Delete3DLUTFile":
		if len(tokens) < 2 {
			return Unknown{Raw: line}
		}
		return Delete3DLUTFile{Filename: joinUnquoted(tokens[1:])}
	case "UploadSettingsFile":
		return UploadSettingsFile{}
	case "StoreSettings":
		if len(tokens) < 3 {
			return Unknown{Raw: line}
		}
		return StoreSettings{Target: tokens[1], StorageName: joinUnquoted(tokens[2:])}
	case "RestoreSettings":
		if len(tokens) != 2 {
			return Unknown{Raw: line}
		}
		return RestoreSettings{Target: tokens[1]}
	case "Toggle":
		if len(tokens) != 2 {
			return Unknown{Raw: line}
		}
		return Toggle{Option: tokens[1]}
	case "ToneMapOn":
		return ToneMapOn{}
	case "ToneMapOff":
		return ToneMapOff{}
	case "DisplayChanged":
		return DisplayChanged{}
	case "RefreshLicenseInfo":
		return RefreshLicenseInfo{}
	case "Force1080p60Output":
		return Force1080p60Output{}
	case "Hotplug":
		return Hotplug{}
	case "FirmwareUpdate":
		return FirmwareUpdate{}
	case "MissingHeartbeat":
		return MissingHeartbeat{}
	}

	// Shared-verb-prefix families: a lone single-token form ending in "."
	// is that family's end-marker; otherwise it's an item line.
	switch {
	case strings.HasPrefix(head, "ProfileGroup"):
		return parseProfileGroupFamily(tokens, line)
	case strings.HasPrefix(head, "Profile"):
		return parseProfileFamily(tokens, line)
	case strings.HasPrefix(head, "SettingPage"):
		return parseSettingPageFamily(tokens, line)
	case strings.HasPrefix(head, "ConfigPage"):
		return parseConfigPageFamily(tokens, line)
	case strings.HasPrefix(head, "Option"):
		return parseOptionFamily(tokens, line)
	}

	return Unknown{Raw: line}
}

func parseError(trimmed, raw string) Message {
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "ERROR"))
	return Error{Text: unquote(rest)}
}

func parseProfileIndexPair(tokens []string, line string, build func(group string, idx int) Message) Message {
	if len(tokens) != 3 {
		return Unknown{Raw: line}
	}
	idx, ok := toInt(tokens[2])
	if !ok {
		return Unknown{Raw: line}
	}
	return build(tokens[1], idx)
}

func parseProfileChange(verb string, tokens []string, line string) Message {
	if len(tokens) < 3 {
		return Unknown{Raw: line}
	}
	idx, ok := toInt(tokens[2])
	if !ok {
		return Unknown{Raw: line}
	}
	if verb == "DeleteProfile" {
		return DeleteProfile{Group: tokens[1], Index: idx}
	}
	if len(tokens) < 4 {
		return Unknown{Raw: line}
	}
	name := joinUnquoted(tokens[3:])
	if verb == "CreateProfile" {
		return CreateProfile{Group: tokens[1], Index: idx, Name: name}
	}
	return RenameProfile{Group: tokens[1], Index: idx, Name: name}
}

func parseIncomingSignal(tokens []string, line string) Message {
	if len(tokens) < 10 {
		return Unknown{Raw: line}
	}
	return IncomingSignalInfo{
		Resolution:  tokens[1],
		FrameRate:   tokens[2],
		SignalType:  tokens[3],
		ColorSpace:  tokens[4],
		BitDepth:    tokens[5],
		HDRMode:     tokens[6],
		Colorimetry: tokens[7],
		BlackLevels: tokens[8],
		AspectRatio: tokens[9],
	}
}

func parseOutgoingSignal(tokens []string, line string) Message {
	if len(tokens) < 9 {
		return Unknown{Raw: line}
	}
	return OutgoingSignalInfo{
		Resolution:  tokens[1],
		FrameRate:   tokens[2],
		SignalType:  tokens[3],
		ColorSpace:  tokens[4],
		BitDepth:    tokens[5],
		HDRMode:     tokens[6],
		Colorimetry: tokens[7],
		BlackLevels: tokens[8],
	}
}

func parseAspectRatio(tokens []string, line string) Message {
	if len(tokens) < 5 {
		return Unknown{Raw: line}
	}
	decimal, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Unknown{Raw: line}
	}
	integer, ok := toInt(tokens[3])
	if !ok {
		return Unknown{Raw: line}
	}
	return AspectRatio{
		Resolution:   tokens[1],
		DecimalRatio: decimal,
		IntegerRatio: integer,
		Name:         joinUnquoted(tokens[4:]),
	}
}

func parseMaskingRatio(tokens []string, line string) Message {
	if len(tokens) != 4 {
		return Unknown{Raw: line}
	}
	decimal, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Unknown{Raw: line}
	}
	integer, ok := toInt(tokens[3])
	if !ok {
		return Unknown{Raw: line}
	}
	return MaskingRatio{Resolution: tokens[1], DecimalRatio: decimal, IntegerRatio: integer}
}

func parseTemperatures(tokens []string, line string) Message {
	if len(tokens) < 5 {
		return Unknown{Raw: line}
	}
	values := make([]int, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		v, ok := toInt(tok)
		if !ok {
			return Unknown{Raw: line}
		}
		values = append(values, v)
	}
	return Temperatures{
		GPU:       values[0],
		HDMIInput: values[1],
		CPU:       values[2],
		Mainboard: values[3],
		Extra:     append([]int(nil), values[4:]...),
	}
}

func parseMacAddress(tokens []string, line string) Message {
	if len(tokens) != 2 || !macPattern.MatchString(tokens[1]) {
		return Unknown{Raw: line}
	}
	return MacAddress{MAC: tokens[1]}
}

func parseProfileGroupFamily(tokens []string, line string) Message {
	if len(tokens) == 1 && tokens[0] == "ProfileGroup." {
		return ProfileGroupEnd{}
	}
	if len(tokens) < 3 {
		return Unknown{Raw: line}
	}
	return ProfileGroup{GroupID: tokens[1], Name: joinUnquoted(tokens[2:])}
}

func parseProfileFamily(tokens []string, line string) Message {
	if len(tokens) == 1 && tokens[0] == "Profile." {
		return ProfileEnd{}
	}
	if len(tokens) < 3 {
		return Unknown{Raw: line}
	}
	return Profile{ProfileID: tokens[1], Name: joinUnquoted(tokens[2:])}
}

func parseSettingPageFamily(tokens []string, line string) Message {
	if len(tokens) == 1 && tokens[0] == "SettingPage." {
		return SettingPageEnd{}
	}
	if len(tokens) < 3 {
		return Unknown{Raw: line}
	}
	return SettingPage{PageID: tokens[1], Name: joinUnquoted(tokens[2:])}
}

func parseConfigPageFamily(tokens []string, line string) Message {
	if len(tokens) == 1 && tokens[0] == "ConfigPage." {
		return ConfigPageEnd{}
	}
	if len(tokens) < 3 {
		return Unknown{Raw: line}
	}
	return ConfigPage{PageID: tokens[1], Name: joinUnquoted(tokens[2:])}
}

func parseOptionFamily(tokens []string, line string) Message {
	if len(tokens) == 1 && tokens[0] == "Option." {
		return OptionEnd{}
	}
	if len(tokens) != 5 {
		return Unknown{Raw: line}
	}
	return Option{
		Type:      tokens[1],
		ID:        tokens[2],
		Current:   ParseOptionScalar(tokens[1], tokens[3]),
		Effective: ParseOptionScalar(tokens[1], tokens[4]),
	}
}

func parseChangeOption(tokens []string, line string) Message {
	if len(tokens) != 5 {
		return Unknown{Raw: line}
	}
	return ChangeOption{
		Type:      tokens[1],
		IDPath:    tokens[2],
		Current:   ParseOptionScalar(tokens[1], tokens[3]),
		Effective: ParseOptionScalar(tokens[1], tokens[4]),
	}
}

func parseInheritOption(tokens []string, line string) Message {
	if len(tokens) != 4 {
		return Unknown{Raw: line}
	}
	return InheritOption{
		Type:      tokens[1],
		IDPath:    tokens[2],
		Effective: ParseOptionScalar(tokens[1], tokens[3]),
	}
}
