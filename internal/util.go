/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty, "null" or
// a PGN date with unknown parts such as "2025.??.??".
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || strings.Contains(s, "?") {
		return time.Time{}, nil
	}
	// PGN dates use dots
	if len(s) == len("2006.01.02") && s[4] == '.' && s[7] == '.' {
		s = strings.ReplaceAll(s, ".", "-")
	}
	return dateparse.ParseAny(s)
}
