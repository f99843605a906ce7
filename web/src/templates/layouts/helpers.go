package layouts

import (
	"strconv"
	"time"
)

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - Kayotsaha"
	}
	return "Kayotsaha"
}

// refreshContent formats a meta refresh value such as "1.5; url=/login".
func refreshContent(delay time.Duration, url string) string {
	secs := strconv.FormatFloat(delay.Seconds(), 'f', -1, 64)
	return secs + "; url=" + url
}
