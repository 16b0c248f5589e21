package domain

import (
	"context"
	"time"
)

// Resampler walks a sample grid newest first against a history and a trend
// cursor and picks one representative value per segment.
//
// Segments whose From boundary is newer than the retention horizon are served
// by the history cursor with the item's sampling delay as tolerance, older ones
// by the trend cursor with the trend delay. Because the walk goes back in time
// the active cursor only ever switches from history to trend.
type Resampler struct {
	desc        MetricDescriptor
	trendsStart int64
	cursors     [2]Cursor
	state       walkState
}

// walkState is the lookahead of the walk. The candidate is the newest row read
// and not yet passed by; it survives across segments until a segment ends
// before it.
type walkState struct {
	candidate *RawSample
	exhausted [2]bool
}

func NewResampler(desc MetricDescriptor, now time.Time, history, trend Cursor) *Resampler {
	return &Resampler{
		desc:        desc,
		trendsStart: desc.TrendsStartDate(now),
		cursors:     [2]Cursor{TableHistory: history, TableTrend: trend},
	}
}

// Run returns one point per segment in the grid's caller order.
func (r *Resampler) Run(ctx context.Context, grid SampleGrid) ([]SeriesPoint, error) {
	if !r.desc.Kind.Numeric() {
		return nil, NewInvalidRangeError("item %q is %s", r.desc.Key, r.desc.Kind)
	}

	segments := grid.Segments()
	values := make([]*float64, len(segments))
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := r.resolve(ctx, seg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return grid.Order(values), nil
}

// Active returns the cursor and qualification tolerance serving a segment.
func (r *Resampler) Active(seg Segment) (Table, int64) {
	if seg.From > r.trendsStart {
		return TableHistory, r.desc.SampleDelay()
	}
	return TableTrend, TrendDelaySeconds
}

func (r *Resampler) resolve(ctx context.Context, seg Segment) (*float64, error) {
	table, interval := r.Active(seg)
	if table == TableTrend {
		if err := r.retire(TableHistory); err != nil {
			return nil, err
		}
	}
	for {
		if r.state.candidate == nil {
			ok, err := r.refill(ctx, table)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
		}

		c := r.state.candidate
		if c.Timestamp > seg.To {
			// Newer than this segment: drop it and read further back.
			r.state.candidate = nil
			continue
		}
		// The candidate is kept either way; it may still serve older segments.
		if seg.To-c.Timestamp < interval || c.Timestamp > seg.From {
			v := Convert(c.Value, r.desc.Unit)
			return &v, nil
		}
		return nil, nil
	}
}

// refill replaces the candidate with the next row of the given cursor.
func (r *Resampler) refill(ctx context.Context, table Table) (bool, error) {
	if r.state.exhausted[table] {
		return false, nil
	}
	sample, ok, err := r.cursors[table].Next(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		r.state.exhausted[table] = true
		return false, nil
	}
	r.state.candidate = &sample
	return true, nil
}

// retire closes a cursor the walk will not come back to, releasing its
// connection before the other cursor is opened.
func (r *Resampler) retire(table Table) error {
	if r.state.exhausted[table] {
		return nil
	}
	r.state.exhausted[table] = true
	return r.cursors[table].Close()
}
