package api

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thanhnp/chain-dns-dashboard/internal/api/handlers"
	"github.com/thanhnp/chain-dns-dashboard/internal/api/middleware"
	"github.com/thanhnp/chain-dns-dashboard/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Logger is the process logger shared by middleware and handlers
type Logger interface {
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
}

// Router wraps the Gin router with handlers
type Router struct {
	engine *gin.Engine
}

// DashboardOptions configure the dashboard front end
type DashboardOptions struct {
	Version         string
	DomainSuffix    string
	SettleTimeout   time.Duration
	EventBufferSize int
}

func newEngine(log Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.CORS())
	return engine
}

func health(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
	}
}

// NewDashboardRouter serves the dashboard page, its form actions and its event stream
func NewDashboardRouter(d *dashboard.Dashboard, opts DashboardOptions, log Logger) *Router {
	engine := newEngine(log)
	engine.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	h := handlers.NewDashboardHandler(d, opts.DomainSuffix, opts.SettleTimeout, opts.EventBufferSize, log)

	engine.GET("/health", health(opts.Version))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	page := engine.Group("/")
	page.Use(middleware.NoCache())
	{
		page.GET("/", h.Page)
		page.GET("/state", h.State)
		page.GET("/events", h.Events)

		page.POST("/register", h.Register)
		page.POST("/lookup", h.Lookup)
		page.POST("/domains/refresh", h.RefreshDomains)
		page.POST("/chain/refresh", h.RefreshChain)
		page.POST("/chain/validate", h.ValidateChain)
		page.POST("/terminal/toggle", h.ToggleTerminal)
	}

	return &Router{engine: engine}
}

// NewLedgerRouter serves the ledger API
func NewLedgerRouter(l handlers.Ledger, version string, log Logger) *Router {
	engine := newEngine(log)
	h := handlers.NewLedgerHandler(l)

	engine.GET("/health", health(version))

	api := engine.Group("/api")
	{
		api.POST("/register", h.Register)
		api.GET("/lookup/:domain", middleware.ValidateDomain(), h.Lookup)
		api.GET("/domains", h.Domains)
		api.GET("/chain", h.Chain)
		api.GET("/validate", h.Validate)
	}

	return &Router{engine: engine}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
