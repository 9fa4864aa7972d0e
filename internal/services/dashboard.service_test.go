package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"statusboard/internal/logger"
	"statusboard/internal/models"
)

type stubRepos struct {
	res   models.Result[[]models.RepoSummary]
	delay time.Duration
	user  string
}

func (s *stubRepos) Repos(ctx context.Context, user string) models.Result[[]models.RepoSummary] {
	s.user = user
	time.Sleep(s.delay)
	return s.res
}

type stubWeather struct {
	res   models.Result[models.Weather]
	delay time.Duration
}

func (s *stubWeather) Current(ctx context.Context) models.Result[models.Weather] {
	time.Sleep(s.delay)
	return s.res
}

type stubSystem struct {
	snap  models.SystemSnapshot
	delay time.Duration
	panic bool
}

func (s *stubSystem) Snapshot(ctx context.Context) models.SystemSnapshot {
	time.Sleep(s.delay)
	if s.panic {
		panic("boom")
	}
	return s.snap
}

func newTestDashboard(sys SystemSource, repos RepoSource, weather WeatherSource) *DashboardService {
	clock := fixedClock(time.UnixMilli(0))
	return NewDashboardService(
		sys, repos, weather,
		NewUptimeService(fakeProbe{uptime: 10}, time.UnixMilli(0), clock, logger.Discard()),
		NewMotivationService(clock),
		logger.Discard(),
	)
}

// realSources wires the real services to fakes: one disk runner and two
// upstream servers. Each of fail* breaks one of them.
func realSources(t *testing.T, failDisk, failGitHub, failWeather bool) (*SystemService, *GitHubService, *WeatherService) {
	t.Helper()

	runner := staticRunner("1K-blocks Used\n100 40\n", nil)
	if failDisk {
		runner = staticRunner("", errExit)
	}
	disk := NewDiskService(runner, time.Second, logger.Discard())
	sys := NewSystemService(fakeProbe{cores: 2, total: 10, free: 5}, disk, logger.Discard())

	gh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failGitHub {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("forbidden"))
			return
		}
		w.Write([]byte(`[{"id":1,"name":"r","html_url":"u","pushed_at":"2024-01-01T00:00:00Z","stargazers_count":1}]`))
	}))
	t.Cleanup(gh.Close)

	wx := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failWeather {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("forbidden"))
			return
		}
		w.Write([]byte(openMeteoBody))
	}))
	t.Cleanup(wx.Close)

	return sys, newTestGitHubService(t, testConfig(), gh.URL), newTestWeatherService(t, wx.URL)
}

func TestDashboardService_OneSourceFails(t *testing.T) {
	tests := []struct {
		name                     string
		failDisk, failGH, failWx bool
		wantDisk, wantGH, wantWx bool
	}{
		{"disk fails", true, false, false, false, true, true},
		{"github fails", false, true, false, true, false, true},
		{"weather fails", false, false, true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, gh, wx := realSources(t, tt.failDisk, tt.failGH, tt.failWx)
			d := newTestDashboard(sys, gh, wx)

			got, err := d.Build(context.Background(), "")
			if err != nil {
				t.Fatalf("Build must not fail on a source failure, got %v", err)
			}

			if _, ok := got.System.Disk.Value(); ok != tt.wantDisk {
				t.Errorf("disk success = %v, want %v", ok, tt.wantDisk)
			}
			if _, ok := got.GitHub.Value(); ok != tt.wantGH {
				t.Errorf("github success = %v, want %v", ok, tt.wantGH)
			}
			if _, ok := got.Weather.Value(); ok != tt.wantWx {
				t.Errorf("weather success = %v, want %v", ok, tt.wantWx)
			}
			if got.System.Memory.TotalBytes != 10 {
				t.Errorf("expected memory to be reported, got %+v", got.System.Memory)
			}
			if got.Motivation.Quote != quotes[0] {
				t.Errorf("expected first quote at epoch, got %q", got.Motivation.Quote)
			}
		})
	}
}

func TestDashboardService_RunsConcurrently(t *testing.T) {
	const delay = 150 * time.Millisecond
	d := newTestDashboard(
		&stubSystem{delay: delay},
		&stubRepos{res: models.Ok([]models.RepoSummary{}), delay: delay},
		&stubWeather{res: models.Ok(models.Weather{}), delay: delay},
	)

	start := time.Now()
	if _, err := d.Build(context.Background(), ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed >= 3*delay {
		t.Errorf("expected concurrent sources, took %v", elapsed)
	}
}

func TestDashboardService_PassesUserOverride(t *testing.T) {
	repos := &stubRepos{res: models.Ok([]models.RepoSummary{})}
	d := newTestDashboard(&stubSystem{}, repos, &stubWeather{res: models.Ok(models.Weather{})})

	if _, err := d.Build(context.Background(), "gopher"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repos.user != "gopher" {
		t.Errorf("expected override user, got %q", repos.user)
	}
}

func TestDashboardService_PanicIsReportedAfterAllSettle(t *testing.T) {
	var weatherDone atomic.Bool
	weather := &stubWeather{res: models.Ok(models.Weather{}), delay: 50 * time.Millisecond}
	wrapped := weatherFunc(func(ctx context.Context) models.Result[models.Weather] {
		r := weather.Current(ctx)
		weatherDone.Store(true)
		return r
	})

	d := newTestDashboard(&stubSystem{panic: true}, &stubRepos{res: models.Ok([]models.RepoSummary{})}, wrapped)

	_, err := d.Build(context.Background(), "")
	var perr *PanicError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PanicError, got %v", err)
	}
	if perr.Source != "system" {
		t.Errorf("expected system source, got %s", perr.Source)
	}
	if !weatherDone.Load() {
		t.Error("Build returned before every source settled")
	}
}

type weatherFunc func(ctx context.Context) models.Result[models.Weather]

func (f weatherFunc) Current(ctx context.Context) models.Result[models.Weather] { return f(ctx) }
