// Package normalize converts human-formatted magnitude strings, as social
// platforms render them ("12.3K", "1,234", "10M"), into exact integers.
// It is the only place in the system that interprets such strings.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// strip keeps digits, separators and the three magnitude suffix letters.
var strip = regexp.MustCompile(`[^0-9.,KMB]`)

// token matches a leading numeric token (optional thousands separators,
// at most one decimal point) followed by an optional suffix letter.
var token = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?|\.\d+)([KMB]?)`)

var multipliers = map[string]float64{
	"":  1,
	"K": 1_000,
	"M": 1_000_000,
	"B": 1_000_000_000,
}

// Count parses a human-formatted count into a non-negative integer.
//
// Inputs that contain no numeric token ("", "garbage") return 0; that is a
// documented lossy fallback, not an error. The function is deterministic and
// side-effect-free.
func Count(text string) uint64 {
	cleaned := strip.ReplaceAllString(text, "")
	m := token.FindStringSubmatch(cleaned)
	if m == nil {
		return 0
	}

	num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}

	v := math.Floor(num * multipliers[m[2]])
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return uint64(v)
}
