package controllers

import (
	"net/http"

	"statusboard/internal/models"
	"statusboard/internal/services"

	"github.com/gin-gonic/gin"
)

// APIController serves the /api routes.
type APIController struct {
	system     services.SystemSource
	github     services.RepoSource
	weather    services.WeatherSource
	uptime     *services.UptimeService
	motivation *services.MotivationService
	dashboard  *services.DashboardService
}

func NewAPIController(
	system services.SystemSource,
	github services.RepoSource,
	weather services.WeatherSource,
	uptime *services.UptimeService,
	motivation *services.MotivationService,
	dashboard *services.DashboardService,
) *APIController {
	return &APIController{
		system:     system,
		github:     github,
		weather:    weather,
		uptime:     uptime,
		motivation: motivation,
		dashboard:  dashboard,
	}
}

// writeResult renders a Result. Source failures are still a 200 so the
// client can degrade one widget; only internal failures are a 500.
func writeResult[T any](c *gin.Context, r models.Result[T]) {
	if err := r.Err(); err != nil && err.Kind == models.KindInternal {
		c.JSON(http.StatusInternalServerError, err.Body())
		return
	}
	c.JSON(http.StatusOK, r)
}

func (a *APIController) GetSystem(c *gin.Context) {
	c.JSON(http.StatusOK, a.system.Snapshot(c.Request.Context()))
}

// GetGitHub lists repositories. ?user= overrides the configured username.
func (a *APIController) GetGitHub(c *gin.Context) {
	writeResult(c, a.github.Repos(c.Request.Context(), c.Query("user")))
}

func (a *APIController) GetWeather(c *gin.Context) {
	writeResult(c, a.weather.Current(c.Request.Context()))
}

func (a *APIController) GetUptime(c *gin.Context) {
	c.JSON(http.StatusOK, a.uptime.Uptime())
}

func (a *APIController) GetMotivation(c *gin.Context) {
	c.JSON(http.StatusOK, a.motivation.Motivation())
}

// GetDashboard returns every section in one payload. It is a 200 even when
// sections are degraded.
func (a *APIController) GetDashboard(c *gin.Context) {
	dash, err := a.dashboard.Build(c.Request.Context(), c.Query("user"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorBody{
			Error:   "Failed to build dashboard",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, dash)
}

// GetHealth is a liveness probe that never touches a data source.
func (a *APIController) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptimeSeconds": a.uptime.Uptime().ProcessSeconds,
	})
}

// NotFound answers unknown /api paths.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
}
