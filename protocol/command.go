/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Arg is one command argument: either a string or an int. Command-builder
// callers pass literals of either type; Build renders them per §4.1.
type Arg = any

// quoteIfNeeded double-quotes value only when it contains a space and is
// not already quoted — the protocol's minimal-quoting rule.
func quoteIfNeeded(value string) string {
	if strings.Contains(value, " ") && !(strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) {
		return `"` + value + `"`
	}
	return value
}

// Build renders "verb arg1 arg2 ..." with single-space separation and
// minimal quoting. It never appends CRLF; the transport owns line framing.
func Build(verb string, args ...Arg) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, verb)
	for _, a := range args {
		switch v := a.(type) {
		case int:
			parts = append(parts, strconv.Itoa(v))
		case int64:
			parts = append(parts, strconv.FormatInt(v, 10))
		case string:
			parts = append(parts, quoteIfNeeded(v))
		case bool:
			parts = append(parts, renderBool(v))
		default:
			parts = append(parts, quoteIfNeeded(toStringArg(v)))
		}
	}
	return strings.Join(parts, " ")
}

func renderBool(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

func toStringArg(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

// RenderOptionValue renders a ChangeOption value argument the way the
// device expects: booleans as YES/NO, everything else passed through to
// Build's own per-type rendering.
func RenderOptionValue(value any) any {
	if b, ok := value.(bool); ok {
		return renderBool(b)
	}
	return value
}
