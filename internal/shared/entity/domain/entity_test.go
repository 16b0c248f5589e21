package domain

import "testing"

func TestNewHost(t *testing.T) {
	host := NewHost("web-01", "")

	if host.VisibleName != "web-01" {
		t.Errorf("expected visible name to default to %q, got %q", "web-01", host.VisibleName)
	}

	if host.ID != 0 {
		t.Errorf("expected ID to be 0 for new host, got %d", host.ID)
	}

	if !host.Monitored() {
		t.Error("expected new host to be monitored")
	}
}

func TestHost_Monitored(t *testing.T) {
	tests := []struct {
		name     string
		status   HostStatus
		expected bool
	}{
		{name: "monitored", status: HostMonitored, expected: true},
		{name: "unmonitored", status: HostUnmonitored, expected: false},
		{name: "template or unknown status", status: 3, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := Host{Name: "h", Status: tt.status}
			if got := host.Monitored(); got != tt.expected {
				t.Errorf("expected Monitored() = %v, got %v", tt.expected, got)
			}
		})
	}
}
