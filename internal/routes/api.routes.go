package routes

import (
	"log/slog"
	"path"
	"strings"

	"statusboard/internal/controllers"
	"statusboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers the /api routes and the fallback that sends
// unknown /api paths to a JSON 404 and everything else to static.
func RegisterAPIRoutes(r *gin.Engine, api *controllers.APIController, static *controllers.StaticServer, limiter *middleware.RateLimiter, log *slog.Logger) {
	group := r.Group("/api", middleware.NoStore(), middleware.RateLimitMiddleware(limiter, log))
	{
		group.GET("/system", api.GetSystem)
		group.GET("/github", api.GetGitHub)
		group.GET("/weather", api.GetWeather)
		group.GET("/uptime", api.GetUptime)
		group.GET("/motivation", api.GetMotivation)
		group.GET("/dashboard", api.GetDashboard)
		group.GET("/health", api.GetHealth)
	}

	r.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			controllers.NotFound(c)
			return
		}
		static.Serve(c)
	})
}

// isAPIPath matches on the cleaned path so dot segments route the same way
// static serving resolves them.
func isAPIPath(p string) bool {
	p = path.Clean("/" + p)
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// NewEngine builds the gin engine with the global middleware stack.
func NewEngine(log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORSMiddleware(),
		middleware.SecurityHeadersMiddleware(),
	)
	return r
}
