package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"statusboard/internal/models"

	"golang.org/x/sync/errgroup"
)

// SystemSource produces the system section.
type SystemSource interface {
	Snapshot(ctx context.Context) models.SystemSnapshot
}

// RepoSource produces the repository section.
type RepoSource interface {
	Repos(ctx context.Context, user string) models.Result[[]models.RepoSummary]
}

// WeatherSource produces the weather section.
type WeatherSource interface {
	Current(ctx context.Context) models.Result[models.Weather]
}

// DashboardService assembles every section into one snapshot per call.
type DashboardService struct {
	system     SystemSource
	github     RepoSource
	weather    WeatherSource
	uptime     *UptimeService
	motivation *MotivationService
	log        *slog.Logger
}

func NewDashboardService(
	system SystemSource,
	github RepoSource,
	weather WeatherSource,
	uptime *UptimeService,
	motivation *MotivationService,
	log *slog.Logger,
) *DashboardService {
	return &DashboardService{
		system:     system,
		github:     github,
		weather:    weather,
		uptime:     uptime,
		motivation: motivation,
		log:        log,
	}
}

// PanicError is returned by Build when a source panicked instead of
// reporting its failure as a Result.
type PanicError struct {
	Source string
	Value  any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s source panicked: %v", e.Source, e.Value)
}

// Build runs the system, GitHub and weather sources concurrently and waits
// for all of them. Source failures land in their own section; the only
// error returned is a PanicError.
func (s *DashboardService) Build(ctx context.Context, user string) (models.Dashboard, error) {
	var (
		out models.Dashboard
		g   errgroup.Group
	)

	g.Go(s.settle("system", func() { out.System = s.system.Snapshot(ctx) }))
	g.Go(s.settle("github", func() { out.GitHub = s.github.Repos(ctx, user) }))
	g.Go(s.settle("weather", func() { out.Weather = s.weather.Current(ctx) }))

	out.Uptime = s.uptime.Uptime()
	out.Motivation = s.motivation.Motivation()

	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}
	return out, nil
}

// settle adapts fn for the errgroup. Sources never return errors, so the
// group only ever sees a recovered panic.
func (s *DashboardService) settle(source string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("source panicked", "source", source, "panic", r, "stack", string(debug.Stack()))
				err = &PanicError{Source: source, Value: r}
			}
		}()
		fn()
		return nil
	}
}
