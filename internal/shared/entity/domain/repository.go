package domain

import (
	"context"
	"errors"
)

var ErrHostNotFound = errors.New("could not find host with this name")

// HostFilter narrows host listings. Empty Names matches every host.
type HostFilter struct {
	Names              []string
	IncludeUnmonitored bool
}

type Repository interface {
	ListHosts(ctx context.Context, filter HostFilter) ([]Host, error)
	GetHost(ctx context.Context, name string) (*Host, error)
	UpsertHost(ctx context.Context, host Host) (int64, error)
}
