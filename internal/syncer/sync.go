// Package syncer ties the activity source, the training log spreadsheet and
// the mirror site together. It owns the orchestration only; all remote
// details live in the clients it is handed.
package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/lmehl/trainsync/internal/strava"
	"github.com/lmehl/trainsync/internal/trainlog"
)

//go:generate mockgen -source=$GOFILE -destination=sync_mocks_test.go -package=syncer_test

type activitySource interface {
	Activity(ctx context.Context, id int64) (*strava.Activity, error)
	ActivitiesInRange(ctx context.Context, start, end time.Time) ([]strava.Activity, error)
}

type trainingLog interface {
	FirstIncompleteDay(ctx context.Context) (time.Time, error)
	AddEntry(ctx context.Context, entry trainlog.Entry) error
	EmptyTallyWeeks(ctx context.Context) ([]trainlog.Week, error)
	SetWeekTallies(ctx context.Context, week trainlog.Week, workouts, yoga int) error
}

type Syncer struct {
	source   activitySource
	trainLog trainingLog
	now      func() time.Time
}

func New(source activitySource, trainLog trainingLog) *Syncer {
	return &Syncer{
		source:   source,
		trainLog: trainLog,
		now:      time.Now,
	}
}

// SyncToSheet writes every activity between the log's first incomplete day
// and now into the training log. Yoga sessions are left out, they are only
// counted in the weekly tallies.
func (s *Syncer) SyncToSheet(ctx context.Context) error {
	logger := log.WithField("run_id", uuid.NewString())

	start, err := s.trainLog.FirstIncompleteDay(ctx)
	if err != nil {
		return fmt.Errorf("get first incomplete day: %w", err)
	}
	now := s.now()
	logger.Infof("syncing activities from %s to %s", start.Format(time.DateOnly), now.Format(time.DateOnly))

	summaries, err := s.source.ActivitiesInRange(ctx, start, now)
	if err != nil {
		return fmt.Errorf("list activities: %w", err)
	}

	var synced int
	// summaries come back newest first; the log is filled oldest first
	for i := len(summaries) - 1; i >= 0; i-- {
		summary := summaries[i]
		if summary.SportType == strava.SportTypeYoga {
			logger.Debugf("skipping yoga session %d", summary.ID)
			continue
		}

		// summaries carry no description or private note
		detail, err := s.source.Activity(ctx, summary.ID)
		if err != nil {
			return fmt.Errorf("get activity %d: %w", summary.ID, err)
		}
		if err := s.trainLog.AddEntry(ctx, entryFromActivity(detail)); err != nil {
			return fmt.Errorf("add entry for activity %d: %w", summary.ID, err)
		}

		logger.Debugf("added %s [%s] from %s", detail.Name, detail.SportType, detail.StartDateLocal.Format(time.DateOnly))
		synced++
	}

	logger.Infof("synced %d activities", synced)
	return nil
}

// RollUpTallies fills the workout/yoga tally cells of every finished week
// that has none yet. A week still in progress is left alone so its counts
// never freeze too early.
func (s *Syncer) RollUpTallies(ctx context.Context) error {
	weeks, err := s.trainLog.EmptyTallyWeeks(ctx)
	if err != nil {
		return fmt.Errorf("get weeks without tallies: %w", err)
	}

	now := s.now()
	for _, week := range weeks {
		// the header's end date is inclusive
		weekEnd := week.End.AddDate(0, 0, 1)
		if now.Before(weekEnd) {
			log.Debugf("week %s not finished yet, skipping tally", week.Title)
			continue
		}

		activities, err := s.source.ActivitiesInRange(ctx, week.Start, weekEnd)
		if err != nil {
			return fmt.Errorf("list activities for week %s: %w", week.Title, err)
		}

		var workouts, yoga int
		for _, a := range activities {
			switch a.SportType {
			case strava.SportTypeWorkout:
				workouts++
			case strava.SportTypeYoga:
				yoga++
			}
		}

		if err := s.trainLog.SetWeekTallies(ctx, week, workouts, yoga); err != nil {
			return fmt.Errorf("set tallies for week %s: %w", week.Title, err)
		}
		log.Infof("week %s: %d workouts, %d yoga sessions", week.Title, workouts, yoga)
	}

	return nil
}

func entryFromActivity(a *strava.Activity) trainlog.Entry {
	return trainlog.Entry{
		Timestamp:      a.StartDateLocal.Time,
		SportType:      a.SportType,
		Name:           a.Name,
		Description:    a.Description,
		PrivateNote:    a.PrivateNote,
		DistanceMeters: a.Distance,
		MovingTimeSec:  a.MovingTime,
	}
}
