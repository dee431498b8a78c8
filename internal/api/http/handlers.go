package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/domain/session"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/deskd/internal/providers/widget"
)

// Version is reported by the root endpoint
const Version = "0.3.0"

// Widgets is the widget refresher as seen by the handlers
type Widgets interface {
	Sources() []string
	Get() []widget.Entry
	Refresh(ctx context.Context) int
}

// Handlers contains all HTTP handlers
type Handlers struct {
	session *session.Manager
	widgets Widgets
	tracer  *tracing.Tracer
	logger  *zap.Logger
	shell   *zap.Logger
}

// NewHandlers creates a new handler set. widgets and tracer may be nil.
func NewHandlers(sess *session.Manager, widgets Widgets, tracer *tracing.Tracer, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		session: sess,
		widgets: widgets,
		tracer:  tracer,
		logger:  logger.Named("http"),
		shell:   logger.Named("shell"),
	}
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.GET("/session", h.Session)
	r.POST("/intents", h.Dispatch)

	r.POST("/menus/:id/open", h.OpenMenu)
	r.POST("/menus/intents", h.DispatchFromMenu)
	r.DELETE("/menus", h.CloseMenu)

	r.GET("/apps", h.ListApps)
	r.POST("/apps", h.InstallApp)
	r.DELETE("/apps/:name", h.UninstallApp)
	r.POST("/apps/:name/focus", h.FocusApp)
	r.POST("/apps/:name/minimize", h.MinimizeApp)
	r.GET("/desktop", h.Desktop)
	r.GET("/taskbar", h.Taskbar)

	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.PutSetting)

	r.GET("/widgets", h.ListWidgets)
	r.POST("/widgets/refresh", h.RefreshWidgets)

	r.POST("/logs", h.StreamLogs)
}

// Root handles the liveness probe
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "deskd",
		"version": Version,
	})
}

// Health reports registry statistics and widget sources
func (h *Handlers) Health(c *gin.Context) {
	var sources []string
	if h.widgets != nil {
		sources = h.widgets.Sources()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"apps":    h.session.Stats(),
		"widgets": sources,
	})
}

// trace runs fn in a child span of the request when tracing is on
func (h *Handlers) trace(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if h.tracer == nil {
		return fn(ctx)
	}
	return h.tracer.Trace(ctx, name, fn)
}
