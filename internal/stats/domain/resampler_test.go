package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cpuUtil() MetricDescriptor {
	return MetricDescriptor{
		Key:                "cpu_util",
		Kind:               KindFloat,
		Unit:               "%",
		RetentionDays:      30,
		SampleDelaySeconds: 900,
	}
}

func resample(t *testing.T, desc MetricDescriptor, now time.Time, src *fakeSource, grid SampleGrid) []SeriesPoint {
	t.Helper()
	start, end := grid.Window()
	history, trend := NewDualResolutionReader(src, desc, "host-1").Open(start, end)
	out, err := NewResampler(desc, now, history, trend).Run(context.Background(), grid)
	require.NoError(t, err)
	return out
}

func TestResampler_HistoryOnly(t *testing.T) {
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 1000, Value: 42}, {Timestamp: 500, Value: 41}},
	}}
	grid, err := NewExplicitGrid([]int64{1000, 500, 0})
	require.NoError(t, err)

	out := resample(t, cpuUtil(), time.Unix(2000, 0), src, grid)
	assert.Equal(t, []SeriesPoint{
		{Point: 1000, Value: f(42)},
		{Point: 500, Value: f(41)},
	}, out)

	assert.Equal(t, []SeriesPoint{
		{Point: 1000, Value: f(42)},
		{Point: 500, Value: f(41)},
		{Point: 0, Value: nil},
	}, grid.Expand(out))
}

func TestResampler_EmptyCursors(t *testing.T) {
	grids := []SampleGrid{}
	for _, count := range []int{1, 3, 10} {
		g, err := NewRangeGrid(0, 36000, count)
		require.NoError(t, err)
		grids = append(grids, g)
	}

	for _, grid := range grids {
		out := resample(t, cpuUtil(), time.Unix(40000, 0), &fakeSource{}, grid)
		require.Len(t, out, grid.Len())
		for _, sp := range out {
			assert.Nil(t, sp.Value)
		}
	}
}

func TestResampler_ZeroRetentionUsesTrends(t *testing.T) {
	desc := cpuUtil()
	desc.RetentionDays = 0
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 9000, Value: 1}},
		TableTrend:   {{Timestamp: 8000, Value: 5}, {Timestamp: 5000, Value: 7}},
	}}
	grid, err := NewExplicitGrid([]int64{9000, 6000, 3000})
	require.NoError(t, err)

	out := resample(t, desc, time.Unix(10000, 0), src, grid)
	assert.Equal(t, []SeriesPoint{{Point: 9000, Value: f(5)}, {Point: 6000, Value: f(7)}}, out)
	for _, q := range src.queries {
		assert.Equal(t, TableTrend, q.table, "history must not be queried")
	}
}

func TestResampler_SwitchesToTrendAtRetentionHorizon(t *testing.T) {
	desc := cpuUtil()
	desc.RetentionDays = 1
	now := time.Unix(10*86400, 0) // horizon at 777600
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 863900, Value: 10}, {Timestamp: 820000, Value: 11}},
		TableTrend:   {{Timestamp: 817200, Value: 21}, {Timestamp: 774000, Value: 22}},
	}}
	grid, err := NewRangeGrid(734400, 864000, 3)
	require.NoError(t, err)

	out := resample(t, desc, now, src, grid)
	assert.Equal(t, []SeriesPoint{
		{Point: 864000, Value: f(10)},
		{Point: 820800, Value: f(21)},
		{Point: 777600, Value: f(22)},
	}, out)
}

func TestResampler_Active(t *testing.T) {
	desc := cpuUtil()
	desc.RetentionDays = 1
	r := NewResampler(desc, time.Unix(2*86400, 0), nil, nil)

	table, interval := r.Active(Segment{From: 86401, To: 90000})
	assert.Equal(t, TableHistory, table)
	assert.Equal(t, int64(900), interval)

	table, interval = r.Active(Segment{From: 86400, To: 90000})
	assert.Equal(t, TableTrend, table)
	assert.Equal(t, TrendDelaySeconds, interval)
}

func TestResampler_CandidateServesSeveralSegments(t *testing.T) {
	desc := cpuUtil()
	desc.SampleDelaySeconds = 300
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 850, Value: 3}},
	}}
	grid, err := NewExplicitGrid([]int64{1000, 900, 800})
	require.NoError(t, err)

	out := resample(t, desc, time.Unix(2000, 0), src, grid)
	assert.Equal(t, []SeriesPoint{{Point: 1000, Value: f(3)}, {Point: 900, Value: f(3)}}, out)
}

func TestResampler_StaleCandidateIsKeptForOlderSegment(t *testing.T) {
	desc := cpuUtil()
	desc.SampleDelaySeconds = 100
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 8500, Value: 4}},
	}}
	grid, err := NewExplicitGrid([]int64{10000, 9000, 8000})
	require.NoError(t, err)

	out := resample(t, desc, time.Unix(20000, 0), src, grid)
	assert.Equal(t, []SeriesPoint{{Point: 10000, Value: nil}, {Point: 9000, Value: f(4)}}, out)
}

func TestResampler_SampleOnBoundary(t *testing.T) {
	desc := cpuUtil()
	desc.Unit = "B"
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 1800, Value: 1048576}},
	}}
	grid, err := NewRangeGrid(0, 1800, 2)
	require.NoError(t, err)

	out := resample(t, desc, time.Unix(3600, 0), src, grid)
	require.Len(t, out, 2)
	assert.Equal(t, f(1), out[0].Value)
	assert.Equal(t, int64(1800), out[0].Point)
}

func TestResampler_ZeroDelayFallsBackToDefault(t *testing.T) {
	desc := cpuUtil()
	desc.SampleDelaySeconds = 0
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 1400, Value: 5}},
	}}
	grid, err := NewExplicitGrid([]int64{2000, 1500, 1000})
	require.NoError(t, err)

	out := resample(t, desc, time.Unix(3000, 0), src, grid)
	assert.Equal(t, []SeriesPoint{{Point: 2000, Value: f(5)}, {Point: 1500, Value: f(5)}}, out)
}

func TestResampler_PreservesCallerOrder(t *testing.T) {
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 1000, Value: 42}, {Timestamp: 500, Value: 41}},
	}}
	grid, err := NewExplicitGrid([]int64{0, 500, 1000})
	require.NoError(t, err)

	out := resample(t, cpuUtil(), time.Unix(2000, 0), src, grid)
	assert.Equal(t, []SeriesPoint{{Point: 500, Value: f(41)}, {Point: 1000, Value: f(42)}}, out)
}

func TestResampler_Idempotent(t *testing.T) {
	src := &fakeSource{rows: map[Table][]RawSample{
		TableHistory: {{Timestamp: 3500, Value: 1}, {Timestamp: 2600, Value: 2}, {Timestamp: 900, Value: 3}},
		TableTrend:   {{Timestamp: 3600, Value: 10}, {Timestamp: 0, Value: 11}},
	}}
	grid, err := NewRangeGrid(0, 3600, 4)
	require.NoError(t, err)

	now := time.Unix(4000, 0)
	first := resample(t, cpuUtil(), now, src, grid)
	second := resample(t, cpuUtil(), now, src, grid)
	assert.Equal(t, first, second)
}

func TestResampler_Errors(t *testing.T) {
	grid, err := NewExplicitGrid([]int64{1000, 0})
	require.NoError(t, err)

	t.Run("query failure", func(t *testing.T) {
		src := &fakeSource{err: errBoom}
		history, trend := NewDualResolutionReader(src, cpuUtil(), "h").Open(0, 1000)
		_, err := NewResampler(cpuUtil(), time.Unix(2000, 0), history, trend).Run(context.Background(), grid)

		var dsErr *DataSourceError
		require.ErrorAs(t, err, &dsErr)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("cursor failure", func(t *testing.T) {
		history := &sliceCursor{err: errBoom}
		_, err := NewResampler(cpuUtil(), time.Unix(2000, 0), history, newSliceCursor()).Run(context.Background(), grid)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("non numeric", func(t *testing.T) {
		desc := cpuUtil()
		desc.Kind = KindNonNumeric
		_, err := NewResampler(desc, time.Unix(2000, 0), newSliceCursor(), newSliceCursor()).Run(context.Background(), grid)
		var rangeErr *InvalidRangeError
		assert.ErrorAs(t, err, &rangeErr)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewResampler(cpuUtil(), time.Unix(2000, 0), newSliceCursor(), newSliceCursor()).Run(ctx, grid)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestResampler_ClosesHistoryWhenTrendTakesOver(t *testing.T) {
	desc := cpuUtil()
	desc.RetentionDays = 1
	history := newSliceCursor(RawSample{Timestamp: 863900, Value: 10}, RawSample{Timestamp: 700000, Value: 1})
	trend := newSliceCursor(RawSample{Timestamp: 817200, Value: 21})
	grid, err := NewRangeGrid(734400, 864000, 3)
	require.NoError(t, err)

	out, err := NewResampler(desc, time.Unix(10*86400, 0), history, trend).Run(context.Background(), grid)
	require.NoError(t, err)

	assert.True(t, history.closed)
	assert.Equal(t, 1, history.calls, "history must not be read after the switch")
	assert.Equal(t, f(21), out[1].Value)
}
