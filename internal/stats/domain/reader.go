package domain

import (
	"context"
	"fmt"
)

// DualResolutionReader opens the history and trend cursors for one item on one entity.
// Queries are deferred until the first Next, so a walk that never reaches the
// trend region never touches the trend table.
type DualResolutionReader struct {
	source     DataSource
	desc       MetricDescriptor
	entityID   string
	trendDelay int64
}

func NewDualResolutionReader(source DataSource, desc MetricDescriptor, entityID string) *DualResolutionReader {
	return &DualResolutionReader{
		source:     source,
		desc:       desc,
		entityID:   entityID,
		trendDelay: TrendDelaySeconds,
	}
}

// Open returns lazy cursors covering [windowStart, windowEnd] plus the decay
// margin of each table.
func (r *DualResolutionReader) Open(windowStart, windowEnd int64) (history, trend Cursor) {
	// The data source bounds are exclusive; a sample sitting on the newest
	// boundary still belongs to the newest segment.
	to := windowEnd + 1
	history = r.lazy(TableHistory, windowStart-r.desc.SampleDelay(), to)
	trend = r.lazy(TableTrend, windowStart-r.trendDelay, to)
	return history, trend
}

func (r *DualResolutionReader) lazy(table Table, from, to int64) *lazyCursor {
	return &lazyCursor{
		op: fmt.Sprintf("query %s of %q on %q", table, r.desc.Key, r.entityID),
		open: func(ctx context.Context) (Cursor, error) {
			return r.source.QueryRawSamples(ctx, r.desc, r.entityID, table, from, to)
		},
	}
}

type lazyCursor struct {
	op   string
	open func(ctx context.Context) (Cursor, error)
	cur  Cursor
	done bool
}

func (c *lazyCursor) Next(ctx context.Context) (RawSample, bool, error) {
	if c.done {
		return RawSample{}, false, nil
	}
	if c.cur == nil {
		cur, err := c.open(ctx)
		if err != nil {
			c.done = true
			return RawSample{}, false, wrapDataSource(c.op, err)
		}
		c.cur = cur
	}

	sample, ok, err := c.cur.Next(ctx)
	if err != nil {
		c.done = true
		return RawSample{}, false, wrapDataSource(c.op, err)
	}
	if !ok {
		c.done = true
		return RawSample{}, false, c.Close()
	}
	return sample, true, nil
}

func (c *lazyCursor) Close() error {
	c.done = true
	if c.cur == nil {
		return nil
	}
	cur := c.cur
	c.cur = nil
	if err := cur.Close(); err != nil {
		return wrapDataSource(c.op, err)
	}
	return nil
}
