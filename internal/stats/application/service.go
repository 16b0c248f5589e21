package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	historydomain "zbxstats/internal/history/domain"
	"zbxstats/internal/infrastructure/telemetry"
	entitydomain "zbxstats/internal/shared/entity/domain"
	"zbxstats/internal/shared/logger"
	"zbxstats/internal/stats/domain"
)

var (
	ErrNoHosts = errors.New("there are no monitored hosts that match the request")
	ErrNoItems = errors.New("there are no items that match the request")
)

const defaultConcurrency = 4

// ExtremumReader computes MIN or MAX of an item over a closed period
type ExtremumReader interface {
	Extremum(ctx context.Context, itemID int64, kind domain.MetricKind, table domain.Table, method historydomain.Method, from, to int64) (*float64, error)
}

// Config tunes the service
type Config struct {
	// Concurrency bounds the per-host resampling workers of one request.
	Concurrency int
}

type Option func(*Service)

// WithClock replaces time.Now as the reference for retention horizons
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service answers statistics queries across hosts
type Service struct {
	logger   logger.Logger
	hosts    entitydomain.Repository
	catalog  domain.Catalog
	source   domain.DataSource
	extremes ExtremumReader
	cfg      Config
	now      func() time.Time
}

func NewService(logger logger.Logger, hosts entitydomain.Repository, catalog domain.Catalog, source domain.DataSource, extremes ExtremumReader, cfg Config, opts ...Option) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	s := &Service{
		logger:   logger,
		hosts:    hosts,
		catalog:  catalog,
		source:   source,
		extremes: extremes,
		cfg:      cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HistoryQuery asks for the resampled sum of items over a set of hosts.
// Empty Hosts selects every monitored host.
type HistoryQuery struct {
	ItemKeys []string
	Hosts    []string
	Grid     domain.GridRequest
}

// ItemPoint is one value of one item's aggregated series
type ItemPoint struct {
	Item     string
	ItemName string
	Point    int64
	Value    *float64
}

// ItemsHistory returns, per item in request order, one point per grid
// boundary in the caller's order.
func (s *Service) ItemsHistory(ctx context.Context, q HistoryQuery) (points []ItemPoint, err error) {
	defer observe("items_history", time.Now(), &err)

	grid, err := domain.PlanGrid(q.Grid)
	if err != nil {
		return nil, err
	}
	if len(q.ItemKeys) == 0 {
		return nil, ErrNoItems
	}
	hosts, err := s.resolveHosts(ctx, q.Hosts)
	if err != nil {
		return nil, err
	}

	// Every descriptor is resolved before any history is read.
	targets := make([][]target, len(q.ItemKeys))
	for i, key := range q.ItemKeys {
		targets[i], err = s.lookup(ctx, key, hosts)
		if err != nil {
			return nil, err
		}
		if len(targets[i]) == 0 {
			return nil, &domain.NotFoundError{Key: key}
		}
		for _, t := range targets[i] {
			if !t.desc.Kind.Numeric() {
				return nil, domain.NewInvalidRangeError("item %q on %q is %s", key, t.host, t.desc.Kind)
			}
		}
	}

	now := s.now()
	series := make([][][]domain.SeriesPoint, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range targets {
		series[i] = make([][]domain.SeriesPoint, len(targets[i]))
		for j, t := range targets[i] {
			g.Go(func() error {
				out, err := s.resample(gctx, t, now, grid)
				if err != nil {
					return err
				}
				series[i][j] = out
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, key := range q.ItemKeys {
		summed, err := sumSeries(grid, series[i])
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", key, err)
		}
		name := targets[i][0].desc.Name
		for _, sp := range summed {
			points = append(points, ItemPoint{Item: key, ItemName: name, Point: sp.Point, Value: sp.Value})
		}
	}

	s.logger.Debug("Served items history", "items", len(q.ItemKeys), "hosts", len(hosts), "segments", grid.Len())
	return points, nil
}

// AggregatedValuesQuery asks for MIN or MAX of items over a period, summed
// over hosts. Start defaults to an hour before End, End to now.
type AggregatedValuesQuery struct {
	ItemKeys []string
	Hosts    []string
	Start    *int64
	End      *int64
	Method   historydomain.Method
}

// AggregatedValues maps each known item key to the sum of per-host extrema.
// Hosts without data in the period contribute 0.
func (s *Service) AggregatedValues(ctx context.Context, q AggregatedValuesQuery) (values map[string]float64, err error) {
	defer observe("items_aggregated_values", time.Now(), &err)

	now := s.now()
	end := now.Unix()
	if q.End != nil {
		end = *q.End
	}
	start := end - domain.TrendDelaySeconds
	if q.Start != nil {
		start = *q.Start
	}
	if start > end {
		return nil, domain.NewInvalidRangeError("start %d is after end %d", start, end)
	}
	method := q.Method
	if method == "" {
		method = historydomain.MethodMax
	}

	hosts, err := s.resolveHosts(ctx, q.Hosts)
	if err != nil {
		return nil, err
	}

	var keys []string
	var targets [][]target
	for _, key := range q.ItemKeys {
		found, err := s.lookup(ctx, key, hosts)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			continue
		}
		for _, t := range found {
			if !t.desc.Kind.Numeric() {
				return nil, domain.NewInvalidRangeError("item %q on %q is %s", key, t.host, t.desc.Kind)
			}
		}
		keys = append(keys, key)
		targets = append(targets, found)
	}
	if len(keys) == 0 {
		return nil, ErrNoItems
	}

	extrema := make([][]float64, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range targets {
		extrema[i] = make([]float64, len(targets[i]))
		for j, t := range targets[i] {
			g.Go(func() error {
				table := domain.TableTrend
				if start > t.desc.TrendsStartDate(now) {
					table = domain.TableHistory
				}
				v, err := s.extremes.Extremum(gctx, t.desc.ItemID, t.desc.Kind, table, method, start, end)
				if err != nil {
					return &domain.DataSourceError{Op: fmt.Sprintf("%s of %q on %q", method, t.desc.Key, t.host), Err: err}
				}
				if v != nil {
					extrema[i][j] = domain.Convert(*v, t.desc.Unit)
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	values = make(map[string]float64, len(keys))
	for i, key := range keys {
		for _, v := range extrema[i] {
			values[key] += v
		}
	}
	return values, nil
}

type target struct {
	host string
	desc domain.MetricDescriptor
}

func (s *Service) resolveHosts(ctx context.Context, names []string) ([]entitydomain.Host, error) {
	hosts, err := s.hosts.ListHosts(ctx, entitydomain.HostFilter{Names: names})
	if err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, ErrNoHosts
	}
	return hosts, nil
}

// lookup resolves a key on every host carrying it; hosts without the item are skipped.
func (s *Service) lookup(ctx context.Context, key string, hosts []entitydomain.Host) ([]target, error) {
	var found []target
	for _, h := range hosts {
		desc, err := s.catalog.Lookup(ctx, key, h.Name)
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = append(found, target{host: h.Name, desc: desc})
	}
	return found, nil
}

func (s *Service) resample(ctx context.Context, t target, now time.Time, grid domain.SampleGrid) (out []domain.SeriesPoint, err error) {
	start, end := grid.Window()
	history, trend := domain.NewDualResolutionReader(s.source, t.desc, t.host).Open(start, end)
	defer func() {
		err = errors.Join(err, history.Close(), trend.Close())
		if err != nil {
			out = nil
		}
	}()

	out, err = domain.NewResampler(t.desc, now, history, trend).Run(ctx, grid)
	if err != nil {
		return nil, err
	}
	telemetry.SeriesResampledTotal.Inc()
	return out, nil
}

// sumSeries adds per-host series position by position and maps the result
// onto every boundary of the grid.
func sumSeries(grid domain.SampleGrid, hostSeries [][]domain.SeriesPoint) ([]domain.SeriesPoint, error) {
	values := make([][]*float64, len(hostSeries))
	for i, series := range hostSeries {
		values[i] = domain.Values(series)
	}
	summed, err := domain.Aggregate(values)
	if err != nil {
		return nil, err
	}

	perSegment := make([]domain.SeriesPoint, len(summed))
	for i, v := range summed {
		perSegment[i] = domain.SeriesPoint{Point: hostSeries[0][i].Point, Value: v}
	}
	return grid.Expand(perSegment), nil
}

func observe(kind string, started time.Time, err *error) {
	telemetry.QueriesTotal.WithLabelValues(kind, telemetry.Status(*err)).Inc()
	telemetry.QueryDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}
