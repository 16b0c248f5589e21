package application

import (
	"context"

	entitydomain "zbxstats/internal/shared/entity/domain"
)

// HostService handles host queries
type HostService struct {
	repo entitydomain.Repository
}

// NewHostService creates a new host service
func NewHostService(repo entitydomain.Repository) *HostService {
	return &HostService{
		repo: repo,
	}
}

// ListHosts returns monitored hosts, optionally restricted to names
func (s *HostService) ListHosts(ctx context.Context, names []string) ([]HostResponse, error) {
	hosts, err := s.repo.ListHosts(ctx, entitydomain.HostFilter{Names: names})
	if err != nil {
		return nil, err
	}

	responses := make([]HostResponse, len(hosts))
	for i, h := range hosts {
		responses[i] = ToHostResponse(h)
	}

	return responses, nil
}

// GetHost returns a host by its technical name, monitored or not
func (s *HostService) GetHost(ctx context.Context, name string) (*HostResponse, error) {
	host, err := s.repo.GetHost(ctx, name)
	if err != nil {
		return nil, err
	}

	response := ToHostResponse(*host)
	return &response, nil
}
