package card

import (
	"math"
	"strconv"
)

// FormatBytes renders n with comma thousands separators: 39500 → "39,500".
func FormatBytes(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3+1)
	if neg {
		out = append(out, '-')
	}
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// WholeBytes rounds a remaining-experience value up to whole bytes.
// The curve produces fractional thresholds; a user 0.5 bytes short still
// needs one more byte.
func WholeBytes(x float64) int64 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Ceil(x))
}
