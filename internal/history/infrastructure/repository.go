package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"

	"zbxstats/internal/history/domain"
	"zbxstats/internal/infrastructure/telemetry"
	statsdomain "zbxstats/internal/stats/domain"
)

// Repository reads and writes the history and trend tables
type Repository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewRepository creates a store whose queries are each bounded by timeout.
// A zero timeout leaves queries bounded only by the caller's context.
func NewRepository(db *sqlx.DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// QueryRawSamples serves the resampler
func (r *Repository) QueryRawSamples(ctx context.Context, desc statsdomain.MetricDescriptor, entityID string, table statsdomain.Table, fromExclusive, toExclusive int64) (statsdomain.Cursor, error) {
	return r.OpenCursor(ctx, desc.ItemID, desc.Kind, table, fromExclusive, toExclusive)
}

func (r *Repository) OpenCursor(ctx context.Context, itemID int64, kind statsdomain.MetricKind, table statsdomain.Table, fromExclusive, toExclusive int64) (statsdomain.Cursor, error) {
	tables, err := domain.TablesFor(kind)
	if err != nil {
		return nil, err
	}
	column := "value"
	if table == statsdomain.TableTrend {
		column = "value_avg"
	}
	query := fmt.Sprintf(`SELECT clock, %s FROM %s WHERE itemid = ? AND clock > ? AND clock < ? ORDER BY clock DESC`,
		column, tables.Name(table))

	qctx, cancel := r.withTimeout(ctx)
	rows, err := r.db.QueryxContext(qctx, r.db.Rebind(query), itemID, fromExclusive, toExclusive)
	telemetry.DataSourceQueriesTotal.WithLabelValues(table.String(), telemetry.Status(err)).Inc()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to query %s: %w", tables.Name(table), err)
	}
	return &rowsCursor{rows: rows, cancel: cancel}, nil
}

// rowsCursor streams rows until exhausted, then releases the connection
type rowsCursor struct {
	rows   *sqlx.Rows
	cancel context.CancelFunc
	done   bool
}

func (c *rowsCursor) Next(ctx context.Context) (statsdomain.RawSample, bool, error) {
	if c.done {
		return statsdomain.RawSample{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return statsdomain.RawSample{}, false, err
	}
	if !c.rows.Next() {
		c.done = true
		err := c.rows.Err()
		if cerr := c.Close(); err == nil {
			err = cerr
		}
		return statsdomain.RawSample{}, false, err
	}

	var sample statsdomain.RawSample
	if err := c.rows.Scan(&sample.Timestamp, &sample.Value); err != nil {
		return statsdomain.RawSample{}, false, err
	}
	return sample, true, nil
}

func (c *rowsCursor) Close() error {
	if c.rows == nil {
		return nil
	}
	err := c.rows.Close()
	c.rows = nil
	c.done = true
	c.cancel()
	return err
}

// Insert writes samples into the history table of kind in one transaction
func (r *Repository) Insert(ctx context.Context, kind statsdomain.MetricKind, samples []domain.Sample) (int64, error) {
	return r.InsertBatch(ctx, map[statsdomain.MetricKind][]domain.Sample{kind: samples})
}

// InsertBatch writes samples of every kind in a single transaction; either all
// rows are stored or none.
func (r *Repository) InsertBatch(ctx context.Context, batch map[statsdomain.MetricKind][]domain.Sample) (int64, error) {
	kinds := make([]statsdomain.MetricKind, 0, len(batch))
	total := 0
	for kind, samples := range batch {
		if _, err := domain.TablesFor(kind); err != nil {
			return 0, err
		}
		if len(samples) > 0 {
			kinds = append(kinds, kind)
			total += len(samples)
		}
	}
	if total == 0 {
		return 0, nil
	}
	slices.Sort(kinds)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, kind := range kinds {
		if err := insertRows(ctx, tx, kind, batch[kind]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(total), nil
}

func insertRows(ctx context.Context, tx *sqlx.Tx, kind statsdomain.MetricKind, samples []domain.Sample) error {
	tables, err := domain.TablesFor(kind)
	if err != nil {
		return err
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(fmt.Sprintf(`INSERT INTO %s (itemid, clock, value) VALUES (?, ?, ?)`, tables.History)))
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", tables.History, err)
	}
	defer stmt.Close()

	for _, s := range samples {
		var value any = s.Value
		if kind == statsdomain.KindInteger {
			value = int64(math.Round(s.Value))
		}
		if _, err := stmt.ExecContext(ctx, s.ItemID, s.Clock, value); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", tables.History, err)
		}
	}
	return nil
}

// RollupTrends only fills hours missing from the trend table. Samples ingested
// later for an hour that already has a trend row do not change that row.
func (r *Repository) RollupTrends(ctx context.Context, kind statsdomain.MetricKind, from, to int64) (int64, error) {
	tables, err := domain.TablesFor(kind)
	if err != nil {
		return 0, err
	}
	avg := "AVG(value)"
	if kind == statsdomain.KindInteger {
		avg = "CAST(AVG(value) AS BIGINT)"
	}
	query := fmt.Sprintf(`INSERT INTO %s (itemid, clock, num, value_min, value_avg, value_max)
SELECT itemid, clock / 3600 * 3600, COUNT(*), MIN(value), %s, MAX(value)
FROM %s
WHERE clock >= ? AND clock < ?
GROUP BY itemid, clock / 3600 * 3600
ON CONFLICT (itemid, clock) DO NOTHING`, tables.Trend, avg, tables.History)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to roll %s up into %s: %w", tables.History, tables.Trend, err)
	}
	return res.RowsAffected()
}

func (r *Repository) PurgeHistory(ctx context.Context, kind statsdomain.MetricKind, itemID, before int64) (int64, error) {
	tables, err := domain.TablesFor(kind)
	if err != nil {
		return 0, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE itemid = ? AND clock < ?`, tables.History)),
		itemID, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge %s: %w", tables.History, err)
	}
	return res.RowsAffected()
}

func (r *Repository) Extremum(ctx context.Context, itemID int64, kind statsdomain.MetricKind, table statsdomain.Table, method domain.Method, from, to int64) (*float64, error) {
	tables, err := domain.TablesFor(kind)
	if err != nil {
		return nil, err
	}

	column := "value"
	if table == statsdomain.TableTrend {
		column = "value_max"
		if method == domain.MethodMin {
			column = "value_min"
		}
	}
	fn := "MAX"
	if method == domain.MethodMin {
		fn = "MIN"
	}
	query := fmt.Sprintf(`SELECT %s(%s) FROM %s WHERE itemid = ? AND clock >= ? AND clock <= ?`, fn, column, tables.Name(table))

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var result sql.NullFloat64
	err = r.db.GetContext(ctx, &result, r.db.Rebind(query), itemID, from, to)
	telemetry.DataSourceQueriesTotal.WithLabelValues(table.String(), telemetry.Status(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s over %s: %w", method, tables.Name(table), err)
	}
	if !result.Valid {
		return nil, nil
	}
	return &result.Float64, nil
}
