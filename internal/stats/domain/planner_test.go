package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRangeGrid(t *testing.T) {
	tests := []struct {
		name     string
		start    int64
		end      int64
		count    int
		expected []int64
	}{
		{name: "even split", start: 0, end: 100, count: 4, expected: []int64{100, 75, 50, 25, 0}},
		{name: "remainder goes to the oldest segment", start: 0, end: 10, count: 3, expected: []int64{10, 7, 4, 0}},
		{name: "single segment", start: 500, end: 1000, count: 1, expected: []int64{1000, 500}},
		{name: "negative start", start: -60, end: 60, count: 2, expected: []int64{60, 0, -60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := NewRangeGrid(tt.start, tt.end, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, grid.Points())
			assert.Equal(t, tt.count, grid.Len())
		})
	}
}

func TestNewRangeGrid_Properties(t *testing.T) {
	for _, c := range []struct {
		start, end int64
		count      int
	}{
		{0, 1, 1}, {0, 7, 7}, {100, 1000, 7}, {1_700_000_000, 1_700_086_400, 24}, {0, 99, 10},
	} {
		grid, err := NewRangeGrid(c.start, c.end, c.count)
		require.NoError(t, err)

		points := grid.Points()
		require.Len(t, points, c.count+1)
		assert.Equal(t, c.end, points[0])
		assert.Equal(t, c.start, points[len(points)-1])
		for i := 1; i < len(points); i++ {
			assert.Greater(t, points[i-1], points[i], "boundaries must be strictly descending")
		}
	}
}

func TestNewRangeGrid_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end int64
		count      int
	}{
		{name: "end before start", start: 10, end: 5, count: 1},
		{name: "end equals start", start: 10, end: 10, count: 1},
		{name: "zero segments", start: 0, end: 10, count: 0},
		{name: "range shorter than segments", start: 0, end: 3, count: 5},
		{name: "too many segments", start: 0, end: 9_000_000_000_000_000_000, count: 100_000_000_000_000},
		{name: "one past the segment limit", start: 0, end: 1_000_000, count: MaxSegments + 1},
		{name: "span overflows", start: -9_000_000_000_000_000_000, end: 9_000_000_000_000_000_000, count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRangeGrid(tt.start, tt.end, tt.count)
			var rangeErr *InvalidRangeError
			assert.ErrorAs(t, err, &rangeErr)
		})
	}
}

func TestNewExplicitGrid(t *testing.T) {
	grid, err := NewExplicitGrid([]int64{0, 1000, 500})
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1000, 500}, grid.Points())
	assert.Equal(t, []int64{1000, 500, 0}, grid.Boundaries())
	assert.Equal(t, []Segment{{From: 500, To: 1000}, {From: 0, To: 500}}, grid.Segments())

	start, end := grid.Window()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(1000), end)
}

func TestNewExplicitGrid_Invalid(t *testing.T) {
	var rangeErr *InvalidRangeError

	_, err := NewExplicitGrid([]int64{100})
	assert.ErrorAs(t, err, &rangeErr)

	_, err = NewExplicitGrid(nil)
	assert.ErrorAs(t, err, &rangeErr)

	_, err = NewExplicitGrid([]int64{100, 50, 100})
	assert.ErrorAs(t, err, &rangeErr)

	tooMany := make([]int64, MaxSegments+2)
	for i := range tooMany {
		tooMany[i] = int64(i)
	}
	_, err = NewExplicitGrid(tooMany)
	assert.ErrorAs(t, err, &rangeErr)
}

func TestNewRangeGrid_SegmentLimit(t *testing.T) {
	grid, err := NewRangeGrid(0, MaxSegments, MaxSegments)
	require.NoError(t, err)
	assert.Equal(t, MaxSegments, grid.Len())
}

func TestPlanGrid(t *testing.T) {
	tests := []struct {
		name     string
		req      GridRequest
		expected []int64
		wantErr  bool
	}{
		{
			name:     "points",
			req:      GridRequest{Points: []int64{10, 20, 30}},
			expected: []int64{10, 20, 30},
		},
		{
			name:     "range",
			req:      GridRequest{Start: i64(0), End: i64(30), SegmentsCount: intp(3)},
			expected: []int64{30, 20, 10, 0},
		},
		{
			name:    "both forms",
			req:     GridRequest{Points: []int64{10, 20}, Start: i64(0)},
			wantErr: true,
		},
		{
			name:    "neither form",
			req:     GridRequest{},
			wantErr: true,
		},
		{
			name:    "partial range",
			req:     GridRequest{Start: i64(0), End: i64(30)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := PlanGrid(tt.req)
			if tt.wantErr {
				var rangeErr *InvalidRangeError
				require.ErrorAs(t, err, &rangeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, grid.Points())
		})
	}
}

func TestSampleGrid_OrderAndExpand(t *testing.T) {
	grid, err := NewExplicitGrid([]int64{500, 0, 1000})
	require.NoError(t, err)

	// Walk order: segment ending at 1000, then segment ending at 500.
	ordered := grid.Order([]*float64{f(1), f(2)})
	assert.Equal(t, []SeriesPoint{{Point: 500, Value: f(2)}, {Point: 1000, Value: f(1)}}, ordered)

	expanded := grid.Expand(ordered)
	assert.Equal(t, []SeriesPoint{
		{Point: 500, Value: f(2)},
		{Point: 0, Value: nil},
		{Point: 1000, Value: f(1)},
	}, expanded)
	assert.Equal(t, []*float64{f(2), nil, f(1)}, Values(expanded))
}
