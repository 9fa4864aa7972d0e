package services

import (
	"context"
	"errors"
	"time"

	"statusboard/internal/config"
)

type fakeProbe struct {
	load        [3]float64
	loadErr     error
	cores       int
	total, free uint64
	memErr      error
	uptime      uint64
	uptimeErr   error
	release     string
}

func (p fakeProbe) LoadAverage() (float64, float64, float64, error) {
	return p.load[0], p.load[1], p.load[2], p.loadErr
}

func (p fakeProbe) LogicalCores() (int, error) { return p.cores, nil }

func (p fakeProbe) Memory() (uint64, uint64, error) { return p.total, p.free, p.memErr }

func (p fakeProbe) Uptime() (uint64, error) { return p.uptime, p.uptimeErr }

func (p fakeProbe) KernelRelease() (string, error) { return p.release, nil }

func staticRunner(out string, err error) CommandRunner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(out), err
	}
}

var errExit = errors.New("df: exit status 1: df: /: No such file or directory")

func testConfig() config.Config {
	return config.Config{
		GitHubUsername: "octocat",
		Weather:        config.Weather{Latitude: 52.52, Longitude: 13.41, Set: true},
		SourceTimeout:  2 * time.Second,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
