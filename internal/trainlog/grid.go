package trainlog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// The training log spreadsheet holds one worksheet per ISO calendar week
// (Monday start). Columns B..O are seven day pairs, text column first and
// value column second, Monday through Sunday. Rows 3-5 are the morning
// session band and rows 6-8 the afternoon band; the cutoff hour between
// them is configurable. Within a band, the row below the top one holds the
// description text and the numeric value, and the bottom row holds the
// private note. P4 and P7 carry the weekly workout and yoga tallies.

const (
	headerCell       = "B1"
	headerDateLayout = "02.01.2006"

	probeStartColumn = "B"
	probeEndColumn   = "O"
	probeStartRow    = 3
	probeEndRow      = 8

	morningTopRow   = 3
	afternoonTopRow = 6

	tallyWorkoutCell = "P4"
	tallyYogaCell    = "P7"
)

// ErrUnknownSport means an entry cannot be mapped onto the grid. It is a
// hard failure so that nothing is dropped silently.
var ErrUnknownSport = errors.New("cannot map entry without a sport type onto the training log grid")

// Entry is one activity translated into the log's positional schema.
type Entry struct {
	Timestamp      time.Time
	SportType      string
	Name           string
	Description    string
	PrivateNote    string
	DistanceMeters float64
	MovingTimeSec  int64
}

// CellWrite is a single destination cell with its accumulation mode:
// numeric cells add onto the existing parsed value, text cells append
// with a newline separator.
type CellWrite struct {
	Cell     string
	Text     string
	Number   float64
	IsNumber bool
}

// WeekTitle derives the worksheet title from the ISO week of t,
// e.g. 2024-07-04 (ISO week 27) -> "KW2724".
func WeekTitle(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("KW%d%02d", week, year%100)
}

// WeekHeader is the content of the header cell summarizing the week's span,
// e.g. "KW 2724 - 01.07.2024 - 07.07.2024".
func WeekHeader(t time.Time) string {
	year, week := t.ISOWeek()
	start := WeekStart(t)
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf(
		"KW %d%02d - %s - %s",
		week, year%100,
		start.Format(headerDateLayout),
		end.Format(headerDateLayout),
	)
}

// WeekStart returns the Monday of t's week, at midnight in t's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -weekdayIndex(t))
}

// weekdayIndex maps Monday to 0 ... Sunday to 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DayColumnPair returns the text and value column letters for t's weekday:
// Monday -> ("B", "C"), ..., Sunday -> ("N", "O").
func DayColumnPair(t time.Time) (textColumn, valueColumn string) {
	offset := weekdayIndex(t) * 2
	return string(rune('B' + offset)), string(rune('B' + offset + 1))
}

// RowBandTop returns the top row of the session band for t's hour.
func RowBandTop(t time.Time, cutoffHour int) int {
	if t.Hour() < cutoffHour {
		return morningTopRow
	}
	return afternoonTopRow
}

// EntryWrites maps an entry to its three destination cells. Runs log
// kilometers (rounded to the nearest 0.5); everything else logs minutes.
func EntryWrites(e Entry, cutoffHour int) ([]CellWrite, error) {
	if e.SportType == "" {
		return nil, ErrUnknownSport
	}

	textColumn, valueColumn := DayColumnPair(e.Timestamp)
	top := RowBandTop(e.Timestamp, cutoffHour)

	descriptionCell := textColumn + strconv.Itoa(top+1)
	noteCell := textColumn + strconv.Itoa(top+2)
	valueCell := valueColumn + strconv.Itoa(top+1)

	var description string
	var value float64
	if e.SportType == "Run" {
		description = e.Description
		value = RoundToHalf(e.DistanceMeters / 1000)
	} else {
		description = e.Description
		if description == "" {
			description = e.Name
		}
		value = math.Round(float64(e.MovingTimeSec) / 60)
	}

	return []CellWrite{
		{Cell: descriptionCell, Text: description},
		{Cell: noteCell, Text: e.PrivateNote},
		{Cell: valueCell, Number: value, IsNumber: true},
	}, nil
}

// RoundToHalf rounds to the nearest 0.5.
func RoundToHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

var germanPrinter = message.NewPrinter(language.German)

// FormatNumber renders a cell value with the log's comma decimal separator.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return germanPrinter.Sprintf("%.1f", v)
}

// ParseNumber reads a cell value back, accepting both comma and point
// decimal separators. Blank parses as zero.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Accumulate merges a write with the cell's existing content: numbers are
// summed, text is newline-appended. Applying the same entry twice therefore
// double-accumulates - that is the documented additive semantics, not a bug.
func Accumulate(existing string, w CellWrite) string {
	if w.IsNumber {
		return FormatNumber(ParseNumber(existing) + w.Number)
	}
	if existing == "" {
		return w.Text
	}
	if w.Text == "" {
		return existing
	}
	return existing + "\n" + w.Text
}

// probeRange is the fixed range read column-major to count populated day
// column pairs, e.g. "B3:O8".
func probeRange() string {
	return fmt.Sprintf(
		"%s%d:%s%d",
		probeStartColumn, probeStartRow, probeEndColumn, probeEndRow,
	)
}

// parseHeader extracts the week start and end dates from a header cell
// like "KW 2724 - 01.07.2024 - 07.07.2024".
func parseHeader(header string) (start, end time.Time, err error) {
	parts := strings.Fields(header)
	if len(parts) < 6 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrHeaderShape, header)
	}
	start, err = time.Parse(headerDateLayout, parts[3])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date in %q: %s", ErrHeaderShape, header, err)
	}
	end, err = time.Parse(headerDateLayout, parts[5])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date in %q: %s", ErrHeaderShape, header, err)
	}
	return start, end, nil
}
