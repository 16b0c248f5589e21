package domain

import "sort"

// MaxSegments bounds the number of segments a single grid may hold.
const MaxSegments = 10_000

// Segment is one interval of a sample grid, From < To.
type Segment struct {
	From int64
	To   int64
}

// SeriesPoint is one resampled value; a nil Value means no qualifying sample.
type SeriesPoint struct {
	Point int64
	Value *float64
}

// GridRequest selects sample points either explicitly or as start/end/count.
type GridRequest struct {
	Start         *int64
	End           *int64
	SegmentsCount *int
	Points        []int64
}

// SampleGrid is an immutable set of segment boundaries. It keeps the caller's
// ordering for output while exposing the boundaries newest first for the walk.
type SampleGrid struct {
	points     []int64
	boundaries []int64
}

// PlanGrid builds a grid from exactly one of the two request forms.
func PlanGrid(req GridRequest) (SampleGrid, error) {
	hasRange := req.Start != nil || req.End != nil || req.SegmentsCount != nil
	if len(req.Points) > 0 {
		if hasRange {
			return SampleGrid{}, NewInvalidRangeError("either points or start, end and segments count must be given, not both")
		}
		return NewExplicitGrid(req.Points)
	}
	if req.Start == nil || req.End == nil || req.SegmentsCount == nil {
		return SampleGrid{}, NewInvalidRangeError("start, end and segments count are required when no points are given")
	}
	return NewRangeGrid(*req.Start, *req.End, *req.SegmentsCount)
}

// NewRangeGrid returns end, end-interval, ... down to start, with
// interval = floor((end-start)/segmentsCount). The last segment absorbs the remainder.
func NewRangeGrid(start, end int64, segmentsCount int) (SampleGrid, error) {
	if end <= start {
		return SampleGrid{}, NewInvalidRangeError("end %d must be after start %d", end, start)
	}
	if segmentsCount < 1 {
		return SampleGrid{}, NewInvalidRangeError("segments count must be at least 1, got %d", segmentsCount)
	}
	if segmentsCount > MaxSegments {
		return SampleGrid{}, NewInvalidRangeError("segments count %d exceeds the limit of %d", segmentsCount, MaxSegments)
	}
	if end-start < 0 {
		return SampleGrid{}, NewInvalidRangeError("range from %d to %d is too wide", start, end)
	}
	interval := (end - start) / int64(segmentsCount)
	if interval == 0 {
		return SampleGrid{}, NewInvalidRangeError("range of %ds is too short for %d segments", end-start, segmentsCount)
	}

	points := make([]int64, 0, segmentsCount+1)
	for i := 0; i < segmentsCount; i++ {
		points = append(points, end-int64(i)*interval)
	}
	points = append(points, start)

	return SampleGrid{points: points, boundaries: points}, nil
}

// NewExplicitGrid keeps the caller's order. Points must be distinct.
func NewExplicitGrid(points []int64) (SampleGrid, error) {
	if len(points) < 2 {
		return SampleGrid{}, NewInvalidRangeError("at least 2 points are required, got %d", len(points))
	}
	if len(points)-1 > MaxSegments {
		return SampleGrid{}, NewInvalidRangeError("%d points exceed the limit of %d segments", len(points), MaxSegments)
	}

	seen := make(map[int64]struct{}, len(points))
	for _, p := range points {
		if _, dup := seen[p]; dup {
			return SampleGrid{}, NewInvalidRangeError("duplicate point %d", p)
		}
		seen[p] = struct{}{}
	}

	caller := append([]int64(nil), points...)
	desc := append([]int64(nil), points...)
	sort.Slice(desc, func(i, j int) bool { return desc[i] > desc[j] })

	return SampleGrid{points: caller, boundaries: desc}, nil
}

// Points returns the boundaries in caller order.
func (g SampleGrid) Points() []int64 {
	return append([]int64(nil), g.points...)
}

// Boundaries returns the boundaries newest first.
func (g SampleGrid) Boundaries() []int64 {
	return append([]int64(nil), g.boundaries...)
}

// Len is the number of segments.
func (g SampleGrid) Len() int {
	if len(g.boundaries) == 0 {
		return 0
	}
	return len(g.boundaries) - 1
}

// Window returns the oldest and newest boundary.
func (g SampleGrid) Window() (start, end int64) {
	if len(g.boundaries) == 0 {
		return 0, 0
	}
	return g.boundaries[len(g.boundaries)-1], g.boundaries[0]
}

// Segments returns the segments newest first.
func (g SampleGrid) Segments() []Segment {
	segments := make([]Segment, 0, g.Len())
	for i := 0; i+1 < len(g.boundaries); i++ {
		segments = append(segments, Segment{From: g.boundaries[i+1], To: g.boundaries[i]})
	}
	return segments
}

// Order arranges per-segment values (newest first, as produced by the walk)
// in caller order, one point per segment keyed by its To boundary.
func (g SampleGrid) Order(values []*float64) []SeriesPoint {
	byTo := g.valuesByBoundary(values)
	out := make([]SeriesPoint, 0, g.Len())
	oldest, _ := g.Window()
	for _, p := range g.points {
		if p == oldest {
			continue
		}
		out = append(out, SeriesPoint{Point: p, Value: byTo[p]})
	}
	return out
}

// Expand maps a per-segment series onto every boundary in caller order.
// The oldest boundary closes no segment and is always nil.
func (g SampleGrid) Expand(series []SeriesPoint) []SeriesPoint {
	byPoint := make(map[int64]*float64, len(series))
	for _, sp := range series {
		byPoint[sp.Point] = sp.Value
	}
	out := make([]SeriesPoint, len(g.points))
	for i, p := range g.points {
		out[i] = SeriesPoint{Point: p, Value: byPoint[p]}
	}
	return out
}

func (g SampleGrid) valuesByBoundary(values []*float64) map[int64]*float64 {
	byTo := make(map[int64]*float64, len(values))
	for i, seg := range g.Segments() {
		if i < len(values) {
			byTo[seg.To] = values[i]
		}
	}
	return byTo
}

// Values extracts the value column of a series.
func Values(series []SeriesPoint) []*float64 {
	values := make([]*float64, len(series))
	for i, sp := range series {
		values[i] = sp.Value
	}
	return values
}
