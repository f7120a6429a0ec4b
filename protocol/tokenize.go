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

// tokenPattern alternates a double-quoted run (quotes retained) and a
// whitespace-delimited run. No escape processing happens within quotes;
// the device never emits any.
var tokenPattern = regexp.MustCompile(`"[^"]*"|\S+`)

func tokenize(line string) []string {
	return tokenPattern.FindAllString(line, -1)
}

// unquote strips a matching pair of surrounding double quotes, if present.
func unquote(token string) string {
	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		return token[1 : len(token)-1]
	}
	return token
}

func joinUnquoted(tokens []string) string {
	return unquote(strings.Join(tokens, " "))
}

func toInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseOptionScalar converts a raw token into the OptionScalar implied by
// the option's declared type tag. INTEGER/INT parse as int64, FLOAT/DOUBLE
// as float64, BOOLEAN/BOOL as bool (YES|TRUE|ON / NO|FALSE|OFF, case
// insensitive); any other type tag, or a value that fails to parse as its
// declared type, falls back to the raw unquoted string.
func ParseOptionScalar(optionType, value string) OptionScalar {
	raw := unquote(value)
	switch strings.ToUpper(optionType) {
	case "INTEGER", "INT":
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
		return raw
	case "FLOAT", "DOUBLE":
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
		return raw
	case "BOOLEAN", "BOOL":
		switch strings.ToUpper(raw) {
		case "YES", "TRUE", "ON":
			return true
		case "NO", "FALSE", "OFF":
			return false
		}
		return raw
	default:
		return raw
	}
}
