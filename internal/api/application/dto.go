package application

import (
	historyapp "zbxstats/internal/history/application"
	entitydomain "zbxstats/internal/shared/entity/domain"
	statsapp "zbxstats/internal/stats/application"
)

// HostResponse represents a host in API responses
type HostResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	VisibleName string `json:"visible_name"`
	Monitored   bool   `json:"monitored"`
}

// ItemPointResponse is one value of an item's series; a null value means no data
type ItemPointResponse struct {
	Item     string   `json:"item"`
	ItemName string   `json:"item_name"`
	Point    int64    `json:"point"`
	Value    *float64 `json:"value"`
}

// IngestSampleRequest is one pushed history value
type IngestSampleRequest struct {
	Host  string  `json:"host"`
	Item  string  `json:"item"`
	Clock int64   `json:"clock,omitempty"`
	Value float64 `json:"value"`
}

// IngestRequest represents the history ingest payload
type IngestRequest struct {
	Samples []IngestSampleRequest `json:"samples"`
}

// IngestResponse acknowledges an accepted batch
type IngestResponse struct {
	Batch    string `json:"batch"`
	Accepted int    `json:"accepted"`
}

// ErrorResponse represents an error in API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToHostResponse converts a domain host to an API response
func ToHostResponse(h entitydomain.Host) HostResponse {
	return HostResponse{
		ID:          h.ID,
		Name:        h.Name,
		VisibleName: h.VisibleName,
		Monitored:   h.Monitored(),
	}
}

// ToItemPointResponses converts service output to API responses
func ToItemPointResponses(points []statsapp.ItemPoint) []ItemPointResponse {
	responses := make([]ItemPointResponse, len(points))
	for i, p := range points {
		responses[i] = ItemPointResponse{
			Item:     p.Item,
			ItemName: p.ItemName,
			Point:    p.Point,
			Value:    p.Value,
		}
	}
	return responses
}

// ToIngestSamples converts the payload into recorder input
func (r IngestRequest) ToIngestSamples() []historyapp.IngestSample {
	samples := make([]historyapp.IngestSample, len(r.Samples))
	for i, s := range r.Samples {
		samples[i] = historyapp.IngestSample{Host: s.Host, Item: s.Item, Clock: s.Clock, Value: s.Value}
	}
	return samples
}

// ToIngestResponse converts an accepted batch
func ToIngestResponse(b historyapp.Batch) IngestResponse {
	return IngestResponse{Batch: b.ID.String(), Accepted: b.Accepted}
}
