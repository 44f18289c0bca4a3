package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var patternEscaper = strings.NewReplacer(
	`-`, `\-`,
	`[`, `\[`,
	`]`, `\]`,
	`/`, `\/`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`*`, `\*`,
	`+`, `\+`,
	`?`, `\?`,
	`.`, `\.`,
	`\`, `\\`,
	`^`, `\^`,
	`$`, `\$`,
	`|`, `\|`,
)

// decimalLiteral is an optionally signed decimal with optional fraction and
// exponent. Digit separators and hex forms are not numbers here.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Escape makes text safe to splice into a pattern: every character matches literally.
func Escape(text string) string {
	return patternEscaper.Replace(text)
}

// ParseNumeric reports whether the trimmed search text is entirely a finite number
// literal and returns its value.
func ParseNumeric(search string) (float64, bool) {
	s := strings.TrimSpace(search)
	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether search is numeric-like.
func IsNumeric(search string) bool {
	_, ok := ParseNumeric(search)
	return ok
}
