package aggregation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"app/internal/model"

	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	stats *model.MonthlyStats
	err   error

	lastUserID string
	lastYear   int
	lastMonth  int
}

func (f *fakeStats) MonthlyStats(_ context.Context, userID string, year, month int) (*model.MonthlyStats, error) {
	f.lastUserID = userID
	f.lastYear = year
	f.lastMonth = month
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

type fakeSnapshots struct {
	err   error
	saved []*model.MonthlyReport
}

func (f *fakeSnapshots) Upsert(_ context.Context, m *model.MonthlyReport) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, m)
	return nil
}

func jobPayload(t *testing.T, job model.AggregationJob) []byte {
	t.Helper()
	data, err := json.Marshal(job)
	require.NoError(t, err)
	return data
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshes the snapshot from live stats", func(t *testing.T) {
		stats := &fakeStats{stats: &model.MonthlyStats{
			WorkingDays:     12,
			TotalDistance:   840,
			TotalDeliveries: 96,
			TotalHighwayFee: 3200,
		}}
		snapshots := &fakeSnapshots{}
		proc := NewProcessor(stats, snapshots)

		err := proc.Process(ctx, jobPayload(t, model.AggregationJob{UserID: "user-1", Year: 2025, Month: 3}))
		require.NoError(t, err)

		require.Equal(t, "user-1", stats.lastUserID)
		require.Equal(t, 2025, stats.lastYear)
		require.Equal(t, 3, stats.lastMonth)

		require.Len(t, snapshots.saved, 1)
		saved := snapshots.saved[0]
		require.Equal(t, "user-1", saved.UserID)
		require.Equal(t, 2025, saved.Year)
		require.Equal(t, 3, saved.Month)
		require.Equal(t, 12, saved.WorkingDays)
		require.Equal(t, 840, saved.TotalDistance)
		require.Equal(t, 96, saved.TotalDeliveries)
		require.Equal(t, 3200, saved.TotalHighwayFee)
		require.Equal(t, 0.0, saved.TotalHours)
	})

	t.Run("empty month writes a zeroed snapshot", func(t *testing.T) {
		stats := &fakeStats{stats: &model.MonthlyStats{}}
		snapshots := &fakeSnapshots{}
		proc := NewProcessor(stats, snapshots)

		err := proc.Process(ctx, jobPayload(t, model.AggregationJob{UserID: "user-1", Year: 2025, Month: 4}))
		require.NoError(t, err)
		require.Len(t, snapshots.saved, 1)
		require.Equal(t, 0, snapshots.saved[0].WorkingDays)
	})

	t.Run("malformed JSON is a bad payload", func(t *testing.T) {
		proc := NewProcessor(&fakeStats{}, &fakeSnapshots{})
		err := proc.Process(ctx, []byte("{not json"))
		require.ErrorIs(t, err, ErrBadPayload)
	})

	t.Run("missing user is a bad payload", func(t *testing.T) {
		proc := NewProcessor(&fakeStats{}, &fakeSnapshots{})
		err := proc.Process(ctx, jobPayload(t, model.AggregationJob{Year: 2025, Month: 3}))
		require.ErrorIs(t, err, ErrBadPayload)
	})

	t.Run("out of range month is a bad payload", func(t *testing.T) {
		proc := NewProcessor(&fakeStats{}, &fakeSnapshots{})
		err := proc.Process(ctx, jobPayload(t, model.AggregationJob{UserID: "user-1", Year: 2025, Month: 13}))
		require.ErrorIs(t, err, ErrBadPayload)
	})

	t.Run("stats errors are retryable", func(t *testing.T) {
		stats := &fakeStats{err: errors.New("connection refused")}
		proc := NewProcessor(stats, &fakeSnapshots{})

		err := proc.Process(ctx, jobPayload(t, model.AggregationJob{UserID: "user-1", Year: 2025, Month: 3}))
		require.ErrorContains(t, err, "connection refused")
		require.NotErrorIs(t, err, ErrBadPayload)
	})

	t.Run("store errors are retryable", func(t *testing.T) {
		stats := &fakeStats{stats: &model.MonthlyStats{}}
		snapshots := &fakeSnapshots{err: errors.New("deadlock detected")}
		proc := NewProcessor(stats, snapshots)

		err := proc.Process(ctx, jobPayload(t, model.AggregationJob{UserID: "user-1", Year: 2025, Month: 3}))
		require.ErrorContains(t, err, "deadlock detected")
		require.NotErrorIs(t, err, ErrBadPayload)
	})
}
