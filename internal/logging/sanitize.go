// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package logging

import (
	"fmt"
	"strings"
)

// MaxLoggedValueLen bounds how much of a user-supplied value reaches a log line.
const MaxLoggedValueLen = 256

// SanitizeValue makes a user-supplied string safe to log. Control characters
// (0x00-0x1F, 0x7F) are replaced by \xNN escapes to prevent log injection, and
// the result is cut at MaxLoggedValueLen runes with a trailing "...".
func SanitizeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n == MaxLoggedValueLen {
			b.WriteString("...")
			break
		}
		n++
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
