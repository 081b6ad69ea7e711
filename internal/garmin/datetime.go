package garmin

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnrecognizedDate means the title text matched none of the known date
// shapes. Retrying will not help, the page layout has likely changed.
var ErrUnrecognizedDate = errors.New("garmin: unrecognized date text")

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseDetailTitle extracts the start time from an activity detail title.
// The site phrases the date relative to now for recent activities
// ("today", "yesterday", a weekday within the last week) and absolutely
// ("July 4, 2024") for older ones; a clock time like "8:30 AM" may follow
// in any of those shapes.
func ParseDetailTitle(text string, now time.Time) (time.Time, error) {
	lower := strings.ToLower(text)
	words := strings.Fields(strings.ReplaceAll(lower, ",", " "))

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	day, ok := relativeDay(lower, words, today)
	if !ok {
		var err error
		day, err = absoluteDay(words, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, strings.TrimSpace(text))
		}
	}

	hour, minute, ok := clockTime(words)
	if !ok {
		return day, nil
	}
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}

func relativeDay(lower string, words []string, today time.Time) (time.Time, bool) {
	if strings.Contains(lower, "today") {
		return today, true
	}
	if strings.Contains(lower, "yesterday") {
		return today.AddDate(0, 0, -1), true
	}
	for _, w := range words {
		wd, ok := weekdayNames[w]
		if !ok {
			continue
		}
		// the named weekday within the last seven days
		back := (mondayIndex(today.Weekday()) - mondayIndex(wd) + 7) % 7
		return today.AddDate(0, 0, -back), true
	}
	return time.Time{}, false
}

func absoluteDay(words []string, loc *time.Location) (time.Time, error) {
	// month name, day and year appear as consecutive tokens somewhere in
	// the title, e.g. "running on july 4 2024 at 8:30 am"
	for i := 0; i+3 <= len(words); i++ {
		candidate := fmt.Sprintf("%s %s %s", words[i], words[i+1], words[i+2])
		// layout tokens must be capitalized; the lowercased input still
		// parses because value-side month matching ignores case
		for _, layout := range []string{"January 2 2006", "Jan 2 2006"} {
			if t, err := time.ParseInLocation(layout, candidate, loc); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, errors.New("no absolute date")
}

func clockTime(words []string) (hour, minute int, ok bool) {
	for i := 0; i+1 < len(words); i++ {
		amPm := words[i+1]
		if amPm != "am" && amPm != "pm" {
			continue
		}
		var h, m int
		if _, err := fmt.Sscanf(words[i], "%d:%d", &h, &m); err != nil {
			continue
		}
		if h < 1 || h > 12 || m < 0 || m > 59 {
			continue
		}
		if amPm == "pm" && h != 12 {
			h += 12
		}
		if amPm == "am" && h == 12 {
			h = 0
		}
		return h, m, true
	}
	return 0, 0, false
}

func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// ParseListDate parses a date cell from the activity list, e.g. "Jul 4 2024".
// The cell renders as stacked spans, so the raw text may carry newlines.
func ParseListDate(text string, loc *time.Location) (time.Time, error) {
	normalized := strings.Join(strings.Fields(text), " ")
	t, err := time.ParseInLocation("Jan 2 2006", normalized, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, normalized)
	}
	return t, nil
}
