package syncer

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lmehl/trainsync/internal/strava"
)

//go:generate mockgen -source=$GOFILE -destination=backfill_mocks_test.go -package=syncer_test

type mirror interface {
	Login(ctx context.Context) error
	OpenActivityOverview(ctx context.Context) error
	OpenFirstActivity(ctx context.Context) error
	ClickPrevious(ctx context.Context) error
	ActivityDateTime(ctx context.Context) (time.Time, error)
	ActivityName(ctx context.Context) (string, error)
	EditActivity(ctx context.Context, title, note string) error
}

// Backfiller walks the mirror site's activity history newest to oldest and
// replaces its auto-generated titles with the names and descriptions of the
// matching source activities.
type Backfiller struct {
	source        activitySource
	mirror        mirror
	lookback      time.Duration
	tolerance     time.Duration
	isPlaceholder func(title string) bool
	now           func() time.Time
}

// isPlaceholder decides which mirror titles may be overwritten; titles it
// rejects are treated as hand-written and left alone.
func NewBackfiller(
	source activitySource,
	mirror mirror,
	lookbackDays int,
	tolerance time.Duration,
	isPlaceholder func(title string) bool,
) *Backfiller {
	return &Backfiller{
		source:        source,
		mirror:        mirror,
		lookback:      time.Duration(lookbackDays) * 24 * time.Hour,
		tolerance:     tolerance,
		isPlaceholder: isPlaceholder,
		now:           time.Now,
	}
}

// Run logs in, opens the newest activity and then steps backwards through
// the history until ctx is cancelled. There is no natural end condition:
// the operator watches and interrupts once old enough entries scroll by.
func (b *Backfiller) Run(ctx context.Context) error {
	now := b.now()
	candidates, err := b.source.ActivitiesInRange(ctx, now.Add(-b.lookback), now)
	if err != nil {
		return fmt.Errorf("list source activities: %w", err)
	}
	log.Infof("backfill: %d source activities in the lookback window", len(candidates))

	if err := b.mirror.Login(ctx); err != nil {
		return err
	}
	if err := b.mirror.OpenActivityOverview(ctx); err != nil {
		return err
	}
	if err := b.mirror.OpenFirstActivity(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := b.backfillCurrent(ctx, candidates); err != nil {
			return err
		}

		if err := b.mirror.ClickPrevious(ctx); err != nil {
			return err
		}
	}
}

func (b *Backfiller) backfillCurrent(ctx context.Context, candidates []strava.Activity) error {
	startedAt, err := b.mirror.ActivityDateTime(ctx)
	if err != nil {
		return err
	}

	match, ok := matchByStart(candidates, startedAt, b.tolerance)
	if !ok {
		log.Debugf("backfill: no source activity near %s, skipping", startedAt.Format(time.DateTime))
		return nil
	}

	name, err := b.mirror.ActivityName(ctx)
	if err != nil {
		return err
	}
	if name == match.Name {
		log.Debugf("backfill: %q already carries the source title, skipping", name)
		return nil
	}
	if !b.isPlaceholder(name) {
		log.Debugf("backfill: %q looks hand-written, leaving it alone", name)
		return nil
	}

	detail, err := b.source.Activity(ctx, match.ID)
	if err != nil {
		return fmt.Errorf("get activity %d: %w", match.ID, err)
	}
	if err := b.mirror.EditActivity(ctx, detail.Name, detail.Description); err != nil {
		return err
	}
	log.Infof("backfill: renamed %q to %q", name, detail.Name)
	return nil
}

func matchByStart(candidates []strava.Activity, startedAt time.Time, tolerance time.Duration) (strava.Activity, bool) {
	for _, c := range candidates {
		diff := wallClock(startedAt).Sub(wallClock(c.StartDateLocal.Time))
		if diff < 0 {
			diff = -diff
		}
		if diff <= tolerance {
			return c, true
		}
	}
	return strava.Activity{}, false
}

// wallClock strips the location so two naive local timestamps compare by
// their wall-clock reading. Both sides here are local times without a real
// zone: the source reports start_date_local with a fake Z suffix and the
// mirror's titles are rendered in the viewer's local time.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
