package strava

import (
	"fmt"
	"strings"
	"time"
)

// LocalTime is the wall-clock timestamp Strava reports in start_date_local.
// The trailing Z in that field does not mean UTC, so the zone is dropped
// on parse and the time is kept as a naive local wall clock.
type LocalTime struct {
	time.Time
}

const localTimeLayout = "2006-01-02T15:04:05Z"

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := time.Parse(localTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse local time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(localTimeLayout) + `"`), nil
}

// Activity covers the fields consumed from both the athlete activity list
// (summary representation) and the single activity endpoint. PrivateNote
// is only present in the detailed representation.
type Activity struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	SportType      string    `json:"sport_type"`
	StartDateLocal LocalTime `json:"start_date_local"`
	Distance       float64   `json:"distance"`    // meters
	MovingTime     int64     `json:"moving_time"` // seconds
	Description    string    `json:"description"`
	PrivateNote    string    `json:"private_note"`
}

const (
	SportTypeRun     = "Run"
	SportTypeYoga    = "Yoga"
	SportTypeWorkout = "Workout"
)
