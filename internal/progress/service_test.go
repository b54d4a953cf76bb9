// ABOUTME: Tests for the weekly report service against a mocked session reader.
// ABOUTME: Verifies window selection, error propagation, and report contents.
package progress_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/harperreed/trainerlog/internal/models"
	"github.com/harperreed/trainerlog/internal/progress"
	"github.com/harperreed/trainerlog/internal/storage"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T, reader progress.SessionReader) *progress.Service {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return progress.NewService(reader,
		progress.WithToday(date(t, "2025-05-25")),
		progress.WithLogger(logger),
	)
}

func TestService_WeeklyReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	readerMock := NewMockSessionReader(ctrl)
	service := newService(t, readerMock)

	id := models.NewClientIdentity("jane_doe", "janelifts")
	malformed := models.NewSession("jane_doe", "Core and Arms 2", date(t, "2025-05-23"))
	malformed.Malformed = true

	readerMock.EXPECT().
		FetchSessions(gomock.Any(), id, date(t, "2025-05-12"), date(t, "2025-05-25")).
		Return([]models.Session{
			*malformed,
			*models.NewSession("jane_doe", "Core and Arms", date(t, "2025-05-21")).
				WithExercise("BenchPress", set(10, 65), set(10, 60)),
			*models.NewSession("jane_doe", "Push", date(t, "2025-05-14")).
				WithExercise("BenchPress", set(12, 60), set(12, 55)).
				WithExercise("Dips", set(10, 0)),
		}, nil)

	report, err := service.WeeklyReport(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "jane_doe (@janelifts)", report.Client)
	assert.Equal(t, "2025-05-25", report.Today)
	assert.Equal(t, date(t, "2025-05-19"), report.CurrentWeek.Start)
	assert.Equal(t, date(t, "2025-05-18"), report.PreviousWeek.End)
	assert.Len(t, report.CurrentSessions, 2)
	assert.Len(t, report.PreviousSessions, 1)
	assert.Equal(t, 1, report.MalformedSessions)
	assert.Equal(t, []string{"Core and Arms"}, report.DistinctWorkouts)

	require.Len(t, report.Improvements, 1)
	assert.Equal(t, progress.Improvement{
		ExerciseName: "BenchPress",
		Metric:       progress.MetricWeight,
		Delta:        5,
		From:         60,
		To:           65,
	}, report.Improvements[0])

	assert.Equal(t, "2 sessions, 1 exercise logged (2025-05-19 to 2025-05-25)", report.Dashboard())
	assert.Contains(t, report.Prompt(), "- 2025-05-21: Core and Arms (BenchPress)")
}

func TestService_WeeklyReport_NoData(t *testing.T) {
	ctrl := gomock.NewController(t)
	readerMock := NewMockSessionReader(ctrl)
	service := newService(t, readerMock)

	readerMock.EXPECT().
		FetchSessions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Session{}, nil)

	report, err := service.WeeklyReport(context.Background(), models.NewClientIdentity("ghost", ""))
	require.NoError(t, err)

	assert.Empty(t, report.CurrentSummary)
	assert.Empty(t, report.PreviousSummary)
	assert.Empty(t, report.Improvements)
	assert.Equal(t, progress.NoDataMessage, report.Dashboard())
	assert.Equal(t, progress.NoDataMessage, report.Prompt())

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"improvements":[]`)
	assert.Contains(t, string(raw), `"current_week":{"start":"2025-05-19","end":"2025-05-25"}`)
}

func TestService_WeeklyReport_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	readerMock := NewMockSessionReader(ctrl)
	service := newService(t, readerMock)

	readerMock.EXPECT().
		FetchSessions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: database is locked", storage.ErrStoreUnavailable))

	report, err := service.WeeklyReport(context.Background(), models.NewClientIdentity("jane_doe", ""))
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, storage.ErrStoreUnavailable))
}

func TestService_WeeklyReport_UsesClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	readerMock := NewMockSessionReader(ctrl)
	logger, _ := test.NewNullLogger()

	calls := 0
	service := progress.NewService(readerMock,
		progress.WithLogger(logger),
		progress.WithClock(func() time.Time {
			calls++
			return time.Date(2025, 6, 4, 18, 30, 0, 0, time.UTC)
		}),
	)

	readerMock.EXPECT().
		FetchSessions(gomock.Any(), gomock.Any(), date(t, "2025-05-26"), date(t, "2025-06-08")).
		Return([]models.Session{}, nil)

	report, err := service.WeeklyReport(context.Background(), models.NewClientIdentity("jane_doe", ""))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", report.Today)
	assert.Equal(t, 1, calls)
}
