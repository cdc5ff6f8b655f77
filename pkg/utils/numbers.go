package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseLeadingInt reads the optionally signed decimal integer at the start of raw,
// after leading whitespace, and ignores whatever follows it: "2abc" and "2.5" both
// yield 2. It reports false when raw does not start with a digit or a sign followed
// by one. Values out of the int64 range saturate.
func ParseLeadingInt(raw string) (int64, bool) {
	s := strings.TrimLeft(raw, " \t\r\n\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		if s[0] == '-' {
			return math.MinInt64, true
		}
		return math.MaxInt64, true
	}
	return n, true
}
