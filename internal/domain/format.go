package domain

import "fmt"

// FormatDuration renders hours as "45 minutes", "10 hours", "2 hours 30 minutes" or "1 days 4 hours".
func FormatDuration(hours float64) string {
	switch {
	case hours < 1:
		return fmt.Sprintf("%d minutes", int(hours*60))
	case hours < 24:
		h := int(hours)
		m := int((hours - float64(h)) * 60)
		if m == 0 {
			return fmt.Sprintf("%d hours", h)
		}
		return fmt.Sprintf("%d hours %d minutes", h, m)
	default:
		days := int(hours / 24)
		rem := int(hours) % 24
		return fmt.Sprintf("%d days %d hours", days, rem)
	}
}
