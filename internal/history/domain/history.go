package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	statsdomain "zbxstats/internal/stats/domain"
)

var ErrNonNumeric = errors.New("item does not store numeric history")

// Sample is one history row to be written
type Sample struct {
	ItemID int64
	Clock  int64
	Value  float64
}

// Method selects the extremum computed over a period
type Method string

const (
	MethodMin Method = "MIN"
	MethodMax Method = "MAX"
)

// ParseMethod accepts MIN or MAX in any case. An empty string means MAX.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToUpper(s)) {
	case MethodMin:
		return MethodMin, nil
	case MethodMax, "":
		return MethodMax, nil
	default:
		return "", fmt.Errorf("unknown aggregation method %q", s)
	}
}

// Tables names the history and trend table of one value class
type Tables struct {
	History string
	Trend   string
}

// TablesFor maps a metric kind onto its Zabbix tables
func TablesFor(kind statsdomain.MetricKind) (Tables, error) {
	switch kind {
	case statsdomain.KindFloat:
		return Tables{History: "history", Trend: "trends"}, nil
	case statsdomain.KindInteger:
		return Tables{History: "history_uint", Trend: "trends_uint"}, nil
	default:
		return Tables{}, ErrNonNumeric
	}
}

// Name returns the table serving the given resolution
func (t Tables) Name(table statsdomain.Table) string {
	if table == statsdomain.TableTrend {
		return t.Trend
	}
	return t.History
}

// Repository is the raw metric store
type Repository interface {
	// OpenCursor streams rows with fromExclusive < clock < toExclusive, newest first.
	// Trend rows report value_avg.
	OpenCursor(ctx context.Context, itemID int64, kind statsdomain.MetricKind, table statsdomain.Table, fromExclusive, toExclusive int64) (statsdomain.Cursor, error)
	Insert(ctx context.Context, kind statsdomain.MetricKind, samples []Sample) (int64, error)
	// InsertBatch stores samples of several kinds atomically.
	InsertBatch(ctx context.Context, batch map[statsdomain.MetricKind][]Sample) (int64, error)
	// RollupTrends aggregates history rows with from <= clock < to into hourly
	// trend rows. Hours already present in the trend table are left untouched,
	// so history written later for such an hour never reaches its trend row.
	RollupTrends(ctx context.Context, kind statsdomain.MetricKind, from, to int64) (int64, error)
	PurgeHistory(ctx context.Context, kind statsdomain.MetricKind, itemID, before int64) (int64, error)
	// Extremum returns nil when no row falls within [from, to].
	Extremum(ctx context.Context, itemID int64, kind statsdomain.MetricKind, table statsdomain.Table, method Method, from, to int64) (*float64, error)
}
