package domain

// HostStatus mirrors the Zabbix host status column
type HostStatus int

const (
	HostMonitored   HostStatus = 0
	HostUnmonitored HostStatus = 1
)

// Host represents a monitored entity in the store
type Host struct {
	ID          int64      `db:"hostid"`
	Name        string     `db:"host"`
	VisibleName string     `db:"name"`
	Status      HostStatus `db:"status"`
}

// NewHost creates a monitored host. The visible name defaults to the technical name.
func NewHost(name, visibleName string) *Host {
	if visibleName == "" {
		visibleName = name
	}
	return &Host{
		Name:        name,
		VisibleName: visibleName,
		Status:      HostMonitored,
	}
}

// Monitored reports whether statistics may be served for the host
func (h *Host) Monitored() bool {
	return h.Status == HostMonitored
}
