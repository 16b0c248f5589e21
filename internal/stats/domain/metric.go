package domain

import (
	"context"
	"time"
)

const (
	// DefaultSampleDelaySeconds replaces a zero recording interval reported by the catalog.
	DefaultSampleDelaySeconds int64 = 15 * 60
	// TrendDelaySeconds is the recording granularity of the trend tables.
	TrendDelaySeconds int64 = 60 * 60

	secondsPerDay int64 = 24 * 60 * 60
)

// MetricKind is the value class of an item as reported by the catalog
type MetricKind int

const (
	KindFloat MetricKind = iota
	KindInteger
	KindNonNumeric
)

func (k MetricKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInteger:
		return "integer"
	default:
		return "non-numeric"
	}
}

// Numeric reports whether samples of this kind can be resampled
func (k MetricKind) Numeric() bool {
	return k == KindFloat || k == KindInteger
}

// MetricDescriptor describes one item on one host for the duration of a query
type MetricDescriptor struct {
	Key  string
	Name string
	// ItemID is the data source handle of the item, opaque to the resampler.
	ItemID             int64
	Kind               MetricKind
	Unit               string
	RetentionDays      int
	SampleDelaySeconds int64
}

// SampleDelay returns the nominal recording interval, never zero.
func (d MetricDescriptor) SampleDelay() int64 {
	if d.SampleDelaySeconds <= 0 {
		return DefaultSampleDelaySeconds
	}
	return d.SampleDelaySeconds
}

// TrendsStartDate is the epoch second before which only trend data is guaranteed to exist.
func (d MetricDescriptor) TrendsStartDate(now time.Time) int64 {
	return now.Unix() - int64(d.RetentionDays)*secondsPerDay
}

// RawSample is one row of a history or trend table
type RawSample struct {
	Timestamp int64
	Value     float64
}

// Table selects the storage resolution a cursor reads from
type Table int

const (
	TableHistory Table = iota
	TableTrend
)

func (t Table) String() string {
	if t == TableTrend {
		return "trend"
	}
	return "history"
}

// Cursor yields raw samples ordered by descending timestamp.
// Next returns ok=false once the rows are exhausted and keeps doing so on later calls.
type Cursor interface {
	Next(ctx context.Context) (sample RawSample, ok bool, err error)
	Close() error
}

// DataSource runs raw sample queries against the monitoring store.
// Both bounds are exclusive.
type DataSource interface {
	QueryRawSamples(ctx context.Context, desc MetricDescriptor, entityID string, table Table, fromExclusive, toExclusive int64) (Cursor, error)
}

// Catalog resolves item metadata for an entity
type Catalog interface {
	Lookup(ctx context.Context, metricKey, entityID string) (MetricDescriptor, error)
}
