package syncer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/lmehl/trainsync/internal/strava"
	"github.com/lmehl/trainsync/internal/syncer"
	"github.com/lmehl/trainsync/internal/trainlog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func summaryActivity(id int64, sportType string, startedAt time.Time) strava.Activity {
	return strava.Activity{
		ID:             id,
		Name:           gofakeit.Sentence(3),
		SportType:      sportType,
		StartDateLocal: strava.LocalTime{Time: startedAt},
		Distance:       gofakeit.Float64Range(1000, 10000),
		MovingTime:     int64(gofakeit.IntRange(600, 7200)),
	}
}

func detailOf(summary strava.Activity) *strava.Activity {
	detail := summary
	detail.Description = gofakeit.Sentence(5)
	detail.PrivateNote = gofakeit.Sentence(4)
	return &detail
}

func entryOf(detail *strava.Activity) trainlog.Entry {
	return trainlog.Entry{
		Timestamp:      detail.StartDateLocal.Time,
		SportType:      detail.SportType,
		Name:           detail.Name,
		Description:    detail.Description,
		PrivateNote:    detail.PrivateNote,
		DistanceMeters: detail.Distance,
		MovingTimeSec:  detail.MovingTime,
	}
}

func TestSyncToSheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	sourceMock := NewMockactivitySource(ctrl)
	trainLogMock := NewMocktrainingLog(ctrl)
	s := syncer.New(sourceMock, trainLogMock)

	firstIncomplete := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	run := summaryActivity(101, strava.SportTypeRun, time.Date(2024, 7, 1, 8, 30, 0, 0, time.UTC))
	workout := summaryActivity(102, strava.SportTypeWorkout, time.Date(2024, 7, 2, 18, 0, 0, 0, time.UTC))
	yoga := summaryActivity(103, strava.SportTypeYoga, time.Date(2024, 7, 3, 7, 0, 0, 0, time.UTC))
	runDetail := detailOf(run)
	workoutDetail := detailOf(workout)

	trainLogMock.EXPECT().FirstIncompleteDay(gomock.Any()).Return(firstIncomplete, nil)
	sourceMock.EXPECT().
		ActivitiesInRange(gomock.Any(), firstIncomplete, gomock.Any()).
		Return([]strava.Activity{yoga, workout, run}, nil)

	// oldest first, yoga never written
	gomock.InOrder(
		sourceMock.EXPECT().Activity(gomock.Any(), run.ID).Return(runDetail, nil),
		trainLogMock.EXPECT().AddEntry(gomock.Any(), entryOf(runDetail)).Return(nil),
		sourceMock.EXPECT().Activity(gomock.Any(), workout.ID).Return(workoutDetail, nil),
		trainLogMock.EXPECT().AddEntry(gomock.Any(), entryOf(workoutDetail)).Return(nil),
	)

	require.NoError(t, s.SyncToSheet(context.Background()))
}

func TestSyncToSheet_FirstIncompleteDayFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	sourceMock := NewMockactivitySource(ctrl)
	trainLogMock := NewMocktrainingLog(ctrl)
	s := syncer.New(sourceMock, trainLogMock)

	headerErr := errors.New("header of week sheet has an unexpected shape")
	trainLogMock.EXPECT().FirstIncompleteDay(gomock.Any()).Return(time.Time{}, headerErr)

	err := s.SyncToSheet(context.Background())
	require.ErrorIs(t, err, headerErr)
}

func TestSyncToSheet_StopsOnAddEntryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sourceMock := NewMockactivitySource(ctrl)
	trainLogMock := NewMocktrainingLog(ctrl)
	s := syncer.New(sourceMock, trainLogMock)

	firstIncomplete := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	older := summaryActivity(101, strava.SportTypeRun, time.Date(2024, 7, 1, 8, 30, 0, 0, time.UTC))
	newer := summaryActivity(102, strava.SportTypeRun, time.Date(2024, 7, 2, 8, 30, 0, 0, time.UTC))
	olderDetail := detailOf(older)

	trainLogMock.EXPECT().FirstIncompleteDay(gomock.Any()).Return(firstIncomplete, nil)
	sourceMock.EXPECT().
		ActivitiesInRange(gomock.Any(), firstIncomplete, gomock.Any()).
		Return([]strava.Activity{newer, older}, nil)

	writeErr := errors.New("sheet gone")
	sourceMock.EXPECT().Activity(gomock.Any(), older.ID).Return(olderDetail, nil)
	trainLogMock.EXPECT().AddEntry(gomock.Any(), entryOf(olderDetail)).Return(writeErr)

	err := s.SyncToSheet(context.Background())
	require.ErrorIs(t, err, writeErr)
}

func TestRollUpTallies(t *testing.T) {
	ctrl := gomock.NewController(t)
	sourceMock := NewMockactivitySource(ctrl)
	trainLogMock := NewMocktrainingLog(ctrl)
	s := syncer.New(sourceMock, trainLogMock)

	finished := trainlog.Week{
		Title: "KW2724",
		Start: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC),
	}
	today := time.Now()
	inProgress := trainlog.Week{
		Title: trainlog.WeekTitle(today),
		Start: trainlog.WeekStart(today),
		End:   trainlog.WeekStart(today).AddDate(0, 0, 6),
	}

	trainLogMock.EXPECT().
		EmptyTallyWeeks(gomock.Any()).
		Return([]trainlog.Week{finished, inProgress}, nil)
	sourceMock.EXPECT().
		ActivitiesInRange(gomock.Any(), finished.Start, finished.End.AddDate(0, 0, 1)).
		Return([]strava.Activity{
			summaryActivity(1, strava.SportTypeWorkout, finished.Start.Add(8*time.Hour)),
			summaryActivity(2, strava.SportTypeRun, finished.Start.AddDate(0, 0, 1)),
			summaryActivity(3, strava.SportTypeYoga, finished.Start.AddDate(0, 0, 2)),
			summaryActivity(4, strava.SportTypeWorkout, finished.Start.AddDate(0, 0, 4)),
		}, nil)
	trainLogMock.EXPECT().SetWeekTallies(gomock.Any(), finished, 2, 1).Return(nil)

	require.NoError(t, s.RollUpTallies(context.Background()))
}

func TestRollUpTallies_NothingToDo(t *testing.T) {
	ctrl := gomock.NewController(t)
	sourceMock := NewMockactivitySource(ctrl)
	trainLogMock := NewMocktrainingLog(ctrl)
	s := syncer.New(sourceMock, trainLogMock)

	trainLogMock.EXPECT().EmptyTallyWeeks(gomock.Any()).Return(nil, nil)

	require.NoError(t, s.RollUpTallies(context.Background()))
}
