package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoEntities       = errors.New("no entities to aggregate")
	ErrMisalignedSeries = errors.New("series are not aligned to the same grid")
)

// InvalidRangeError reports a malformed grid request or a metric that cannot be sampled
type InvalidRangeError struct {
	Reason string
}

func NewInvalidRangeError(format string, args ...any) *InvalidRangeError {
	return &InvalidRangeError{Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidRangeError) Error() string {
	return "invalid range: " + e.Reason
}

// NotFoundError reports an item key unknown to the catalog
type NotFoundError struct {
	Key    string
	Entity string
}

func (e *NotFoundError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("item %q not found", e.Key)
	}
	return fmt.Sprintf("item %q not found on %q", e.Key, e.Entity)
}

// DataSourceError wraps a failed query against the raw metric store
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source: %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func wrapDataSource(op string, err error) error {
	var dsErr *DataSourceError
	if errors.As(err, &dsErr) {
		return err
	}
	return &DataSourceError{Op: op, Err: err}
}
