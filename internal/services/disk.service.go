package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"statusboard/internal/format"
	"statusboard/internal/models"
)

const diskSource = "Disk"

// diskCommand queries size and used 1K-blocks of the root filesystem.
var diskCommand = []string{"df", "-k", "--output=size,used", "/"}

// CommandRunner executes name with args and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec. Stderr is folded into the
// error on non-zero exit.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// DiskService reports root filesystem usage by running df once per call.
type DiskService struct {
	run     CommandRunner
	timeout time.Duration
	log     *slog.Logger
}

// NewDiskService creates a DiskService. A zero timeout means no bound.
func NewDiskService(run CommandRunner, timeout time.Duration, log *slog.Logger) *DiskService {
	if run == nil {
		run = ExecRunner
	}
	return &DiskService{run: run, timeout: timeout, log: log}
}

// Usage runs the disk query. It never returns an error outside the Result.
func (s *DiskService) Usage(ctx context.Context) models.Result[models.DiskUsage] {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.run(ctx, diskCommand[0], diskCommand[1:]...)
	if err != nil {
		serr := contextFailure(ctx, diskSource)
		if serr == nil {
			serr = models.DiskQueryError(err)
		}
		logFailure(s.log, "disk", serr)
		return models.Fail[models.DiskUsage](serr)
	}

	usage, err := parseDiskOutput(out)
	if err != nil {
		serr := models.DiskQueryError(err)
		logFailure(s.log, "disk", serr)
		return models.Fail[models.DiskUsage](serr)
	}

	s.log.Debug("Disk usage", "mount", "/", "total", format.Bytes(usage.TotalBytes), "used", format.Bytes(usage.UsedBytes))
	return models.Ok(usage)
}

var errNoOutput = errors.New("disk query produced no output")

// parseDiskOutput reads "<size_kb> <used_kb>" from the last non-empty line.
func parseDiskOutput(out []byte) (models.DiskUsage, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return models.DiskUsage{}, errNoOutput
	}

	fields := strings.Fields(last)
	if len(fields) != 2 {
		return models.DiskUsage{}, fmt.Errorf("expected 2 fields, got %d in %q", len(fields), last)
	}

	sizeKB, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return models.DiskUsage{}, fmt.Errorf("invalid size %q: %w", fields[0], err)
	}
	usedKB, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return models.DiskUsage{}, fmt.Errorf("invalid used %q: %w", fields[1], err)
	}
	if sizeKB == 0 {
		return models.DiskUsage{}, errors.New("filesystem reports zero size")
	}

	total := sizeKB * 1024
	used := usedKB * 1024
	var free uint64
	if used < total {
		free = total - used
	}

	return models.DiskUsage{
		TotalBytes:     total,
		UsedBytes:      used,
		FreeBytes:      free,
		UsedPercentage: round2(float64(usedKB) / float64(sizeKB) * 100),
	}, nil
}
