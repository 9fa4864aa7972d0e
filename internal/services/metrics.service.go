package services

import (
	"context"
	"log/slog"
	"runtime"

	"statusboard/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostProbe reads figures the OS reports about the host.
type HostProbe interface {
	LoadAverage() (load1, load5, load15 float64, err error)
	LogicalCores() (int, error)
	Memory() (total, free uint64, err error)
	Uptime() (uint64, error)
	KernelRelease() (string, error)
}

// GopsutilProbe is the HostProbe backed by gopsutil.
type GopsutilProbe struct{}

func (GopsutilProbe) LoadAverage() (float64, float64, float64, error) {
	avg, err := load.Avg()
	if err != nil {
		return 0, 0, 0, err
	}
	return avg.Load1, avg.Load5, avg.Load15, nil
}

func (GopsutilProbe) LogicalCores() (int, error) {
	return cpu.Counts(true)
}

func (GopsutilProbe) Memory() (uint64, uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, err
	}
	return vm.Total, vm.Free, nil
}

func (GopsutilProbe) Uptime() (uint64, error) {
	return host.Uptime()
}

func (GopsutilProbe) KernelRelease() (string, error) {
	return host.KernelVersion()
}

// SystemService reports CPU, memory and disk figures for the host
type SystemService struct {
	probe    HostProbe
	disk     *DiskService
	platform string
	log      *slog.Logger
}

// NewSystemService creates a SystemService. The disk query runs through disk.
func NewSystemService(probe HostProbe, disk *DiskService, log *slog.Logger) *SystemService {
	return &SystemService{
		probe:    probe,
		disk:     disk,
		platform: runtime.GOOS,
		log:      log,
	}
}

// CPU returns the load average triple rounded to two decimals and the
// logical core count. Probe failures degrade to zeros.
func (s *SystemService) CPU() models.CPULoad {
	l1, l5, l15, err := s.probe.LoadAverage()
	if err != nil {
		s.log.Warn("Could not read load average", "error", err)
		l1, l5, l15 = 0, 0, 0
	}

	cores, err := s.probe.LogicalCores()
	if err != nil {
		s.log.Warn("Could not get CPU core count", "error", err)
		cores = 0
	}

	return models.CPULoad{
		Load1:  round2(l1),
		Load5:  round2(l5),
		Load15: round2(l15),
		Cores:  cores,
	}
}

// Memory returns physical memory usage with used = total - free.
func (s *SystemService) Memory() models.MemoryUsage {
	total, free, err := s.probe.Memory()
	if err != nil {
		s.log.Warn("Could not read memory", "error", err)
		return models.MemoryUsage{}
	}
	return memoryUsage(total, free)
}

func memoryUsage(total, free uint64) models.MemoryUsage {
	if free > total {
		free = total
	}
	used := total - free

	var pct float64
	if total > 0 {
		pct = round2(float64(used) / float64(total) * 100)
	}

	return models.MemoryUsage{
		TotalBytes:     total,
		UsedBytes:      used,
		FreeBytes:      free,
		UsedPercentage: pct,
	}
}

// Release returns the kernel release string, or "" if unknown.
func (s *SystemService) Release() string {
	release, err := s.probe.KernelRelease()
	if err != nil {
		s.log.Warn("Could not read kernel release", "error", err)
		return ""
	}
	return release
}

// Snapshot returns the complete system section. Only the disk part can fail
// and it does so inside its own Result.
func (s *SystemService) Snapshot(ctx context.Context) models.SystemSnapshot {
	return models.SystemSnapshot{
		CPU:      s.CPU(),
		Memory:   s.Memory(),
		Disk:     s.disk.Usage(ctx),
		Platform: s.platform,
		Release:  s.Release(),
	}
}
