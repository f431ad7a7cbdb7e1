package analytics

import (
	"fmt"
	"regexp"
	"strconv"
)

var hashtagPattern = regexp.MustCompile(`#[a-zA-Z0-9_]+`)

// FormatNumber abbreviates large counts: 1500 is "1.5K", 2500000 is "2.5M"
func FormatNumber(n int64) string {
	switch {
	case n == 0:
		return "0"
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatEngagementRate renders a fractional rate as a percentage with one decimal
func FormatEngagementRate(rate float64) string {
	if rate == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}

// TruncateText cuts s to max runes and appends "..." when it was longer
func TruncateText(s string, max int) string {
	runes := []rune(s)
	if max < 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// ExtractHashtags returns every #tag in s in order of appearance
func ExtractHashtags(s string) []string {
	tags := hashtagPattern.FindAllString(s, -1)
	if tags == nil {
		return []string{}
	}
	return tags
}
