package services

import (
	"log/slog"
	"time"

	"statusboard/internal/models"
)

// UptimeService reports host uptime and process lifetime.
type UptimeService struct {
	probe   HostProbe
	started time.Time
	now     func() time.Time
	log     *slog.Logger
}

// NewUptimeService creates an UptimeService whose process clock starts at started.
func NewUptimeService(probe HostProbe, started time.Time, now func() time.Time, log *slog.Logger) *UptimeService {
	if now == nil {
		now = time.Now
	}
	return &UptimeService{probe: probe, started: started, now: now, log: log}
}

// Uptime never fails. An unreadable host uptime reports zero.
func (s *UptimeService) Uptime() models.Uptime {
	sys, err := s.probe.Uptime()
	if err != nil {
		s.log.Warn("Could not read host uptime", "error", err)
		sys = 0
	}

	proc := s.now().Sub(s.started).Seconds()
	if proc < 0 {
		proc = 0
	}

	return models.Uptime{
		SystemSeconds:  float64(sys),
		ProcessSeconds: proc,
	}
}
