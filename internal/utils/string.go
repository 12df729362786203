package utils

import "strconv"

// IsAlpha reports whether a string consists only of ASCII letters.
// Words with digits, punctuation or accents never map to a class pattern,
// so callers can reject them before hitting the engine.
func IsAlpha(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		upper := r >= 'A' && r <= 'Z'
		lower := r >= 'a' && r <= 'z'
		if !upper && !lower {
			return false
		}
	}
	return true
}

// FormatWithCommas renders an int with thousands separators for display.
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	start := 0
	if n < 0 {
		start = 1
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := start; i < len(s); i++ {
		if i > start && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if start == 1 {
		out = append([]byte{'-'}, out...)
	}
	return string(out)
}
