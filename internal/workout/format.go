package workout

import (
	"fmt"
	"strings"
)

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) string {
	if n < 0 {
		return "-"
	}
	return ""
}

// FormatMMSS renders seconds as MM:SS, with a leading '-' for negatives.
func FormatMMSS(secs int) string {
	a := abs(secs)
	return fmt.Sprintf("%s%02d:%02d", sign(secs), a/60, a%60)
}

// FormatHHMMSS renders seconds as HH:MM:SS, or MM:SS under an hour.
func FormatHHMMSS(secs int) string {
	a := abs(secs)
	h, m, s := a/3600, (a%3600)/60, a%60
	if h > 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign(secs), h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign(secs), m, s)
}

// FormatReadable renders seconds as e.g. "5m 30s", "12m" or "45s".
func FormatReadable(secs int) string {
	m, s := secs/60, secs%60
	switch {
	case m == 0:
		return fmt.Sprintf("%ds", s)
	case s == 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// ParseMMSS is the inverse of FormatMMSS.
func ParseMMSS(v string) (int, error) {
	neg := strings.HasPrefix(v, "-")
	v = strings.TrimPrefix(v, "-")
	var m, s int
	if _, err := fmt.Sscanf(v, "%d:%d", &m, &s); err != nil {
		return 0, fmt.Errorf("parse %q: %w", v, err)
	}
	if s < 0 || s > 59 || m < 0 {
		return 0, fmt.Errorf("parse %q: out of range", v)
	}
	total := m*60 + s
	if neg {
		total = -total
	}
	return total, nil
}

// ToTotalSeconds combines minutes and seconds.
func ToTotalSeconds(minutes, seconds int) int {
	return minutes*60 + seconds
}
