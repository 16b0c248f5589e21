package domain

import (
	"context"
	"errors"
	"sort"
)

// sliceCursor serves rows newest first, the way the SQL cursor does.
type sliceCursor struct {
	rows   []RawSample
	pos    int
	err    error
	closed bool
	calls  int
}

func newSliceCursor(rows ...RawSample) *sliceCursor {
	sorted := append([]RawSample(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp > sorted[j].Timestamp })
	return &sliceCursor{rows: sorted}
}

func (c *sliceCursor) Next(ctx context.Context) (RawSample, bool, error) {
	c.calls++
	if c.err != nil {
		return RawSample{}, false, c.err
	}
	if c.pos >= len(c.rows) {
		return RawSample{}, false, nil
	}
	s := c.rows[c.pos]
	c.pos++
	return s, true, nil
}

func (c *sliceCursor) Close() error {
	c.closed = true
	return nil
}

type query struct {
	table    Table
	from, to int64
}

// fakeSource records the windows it was asked for.
type fakeSource struct {
	rows    map[Table][]RawSample
	err     error
	queries []query
}

func (s *fakeSource) QueryRawSamples(ctx context.Context, desc MetricDescriptor, entityID string, table Table, from, to int64) (Cursor, error) {
	s.queries = append(s.queries, query{table: table, from: from, to: to})
	if s.err != nil {
		return nil, s.err
	}
	var rows []RawSample
	for _, r := range s.rows[table] {
		if r.Timestamp > from && r.Timestamp < to {
			rows = append(rows, r)
		}
	}
	return newSliceCursor(rows...), nil
}

var errBoom = errors.New("boom")

func f(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }

func intp(v int) *int { return &v }
