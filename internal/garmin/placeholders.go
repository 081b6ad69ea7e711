package garmin

import (
	"regexp"
	"strings"
)

// The site names unnamed uploads "<Place> <Sport>", e.g. "Berlin Running".
// Like the locators, this is a data table: a new auto-name shape is a
// pattern edit, not a logic change.
var placeholderTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\p{Lu}[\p{L}.'-]*(?: \p{Lu}[\p{L}.'-]*)* ` +
		`(?:Trail Running|Running|Indoor Cycling|Cycling|Open Water Swimming|Pool Swimming|Swimming|Walking|Hiking|Strength|Cardio|Yoga)$`),
	regexp.MustCompile(`^(?:Trail Running|Running|Indoor Cycling|Cycling|Open Water Swimming|Pool Swimming|Swimming|Walking|Hiking|Strength|Cardio|Yoga)$`),
}

// IsPlaceholderTitle reports whether a title looks auto-generated. Only
// such titles may be overwritten during a backfill; anything hand-written
// stays untouched.
func IsPlaceholderTitle(title string) bool {
	title = strings.TrimSpace(title)
	for _, p := range placeholderTitlePatterns {
		if p.MatchString(title) {
			return true
		}
	}
	return false
}
