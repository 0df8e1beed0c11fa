/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName title-cases a player's first and last name, dropping any
// middle names.
func NormalizeName(s string) string {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	first := titleCase(parts[0])
	last := titleCase(parts[len(parts)-1])
	if len(parts) == 1 || first == last {
		return first
	}
	return first + " " + last
}

func titleCase(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ScoreToString renders a tiebreak value using the ½ glyph, e.g. 3.5 is
// "3½", 0.5 is "½" and 0.25 falls back to "0.25".
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	switch frac {
	case 0:
		return strconv.FormatFloat(whole, 'f', 0, 64)
	case 0.5:
		if whole == 0 {
			return "½"
		}
		return strconv.FormatFloat(whole, 'f', 0, 64) + "½"
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}
