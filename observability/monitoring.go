package observability

import (
	"runtime"
	"sync/atomic"
	"time"
)

// Stats aggregates the counters served on the stats route.
type Stats struct {
	PublicMessages  uint64 `json:"public_messages"`
	PrivateMessages uint64 `json:"private_messages"`
	Registrations   uint64 `json:"registrations"`
	Logins          uint64 `json:"logins"`
	FailedRequests  uint64 `json:"failed_requests"`
	AllocMemMb      uint64 `json:"alloc_mem_mb"`
	NumGC           uint32 `json:"num_gc"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
}

// MonitoringManager collects request telemetry with atomic counters so the
// hot path never takes a lock.
type MonitoringManager struct {
	publicMessages  atomic.Uint64
	privateMessages atomic.Uint64
	registrations   atomic.Uint64
	logins          atomic.Uint64
	failedRequests  atomic.Uint64
	startedAt       time.Time
}

func NewMonitoringManager() *MonitoringManager {
	return &MonitoringManager{startedAt: time.Now()}
}

func (mm *MonitoringManager) IncrPublicMessages()  { mm.publicMessages.Add(1) }
func (mm *MonitoringManager) IncrPrivateMessages() { mm.privateMessages.Add(1) }
func (mm *MonitoringManager) IncrRegistrations()   { mm.registrations.Add(1) }
func (mm *MonitoringManager) IncrLogins()          { mm.logins.Add(1) }
func (mm *MonitoringManager) IncrFailedRequests()  { mm.failedRequests.Add(1) }

// Snapshot freezes the counters together with process memory figures.
func (mm *MonitoringManager) Snapshot() Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return Stats{
		PublicMessages:  mm.publicMessages.Load(),
		PrivateMessages: mm.privateMessages.Load(),
		Registrations:   mm.registrations.Load(),
		Logins:          mm.logins.Load(),
		FailedRequests:  mm.failedRequests.Load(),
		AllocMemMb:      mem.Alloc / 1024 / 1024,
		NumGC:           mem.NumGC,
		UptimeSeconds:   int64(time.Since(mm.startedAt).Seconds()),
	}
}
