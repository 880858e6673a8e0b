package participationdomain

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxFinishSeconds is the longest finish time accepted, 9999 hours. Larger
// inputs parse as malformed rather than overflow the stored column.
const MaxFinishSeconds = 9999 * 3600

// ParseTime converts "HH:MM:SS" or "MM:SS" to whole seconds. Any other
// shape yields 0, and a part that is not a non-negative integer counts as 0.
func ParseTime(s string) int {
	seconds, _ := ParseTimeChecked(s)
	return seconds
}

// ParseTimeChecked is ParseTime that also reports whether the input was
// well formed, so callers can tell a real zero from a fallback.
func ParseTimeChecked(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")

	var h, m, sec string
	switch len(parts) {
	case 3:
		h, m, sec = parts[0], parts[1], parts[2]
	case 2:
		m, sec = parts[0], parts[1]
	default:
		return 0, false
	}

	ok := true
	field := func(p string) int {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > MaxFinishSeconds {
			ok = false
			return 0
		}
		return n
	}

	total := field(m)*60 + field(sec)
	if len(parts) == 3 {
		total += field(h) * 3600
	}
	if total > MaxFinishSeconds {
		return 0, false
	}
	return total, ok
}

// FormatTime renders seconds as "HH:MM:SS". Hours are not wrapped at 24 and
// negative input renders as "00:00:00".
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
