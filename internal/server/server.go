// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/controller"
)

type Options struct {
	// FreezeAt switches the API to read only once passed. Zero disables it.
	FreezeAt time.Time
	// OpsUser and OpsPassword guard the /ops area.
	OpsUser     string
	OpsPassword string
}

func NewServer(serviceName string, registry *controller.Registry, cookies sessions.Store, opts Options) *Server {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		logger:      slog.Default().WithGroup("http"),
		serviceName: serviceName,
		registry:    registry,
		cookies:     cookies,
		opts:        opts,
	}
	s.mux = s.routes()
	return s
}

type Server struct {
	serviceName string
	logger      *slog.Logger
	registry    *controller.Registry
	cookies     sessions.Store
	opts        Options
	mux         *gin.Engine
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() *gin.Engine {
	mux := gin.New()
	mux.Use(
		sloggin.NewWithConfig(s.logger,
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), otelgin.Middleware(s.serviceName), slogAddTraceAttributes,
	)

	mux.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	username := s.opts.OpsUser
	if username == "" {
		username = "admin"
	}
	password := s.opts.OpsPassword
	if password == "" {
		password = "admin"
	}
	opsArea := mux.Group("/ops", gin.BasicAuth(gin.Accounts{username: password}))
	opsArea.GET("/sessions", s.sessionCount)
	opsArea.POST("/sessions/evict", s.evictSessions)

	api := mux.Group("/api")
	if !s.opts.FreezeAt.IsZero() {
		api.Use(readOnly(s.logger, s.opts.FreezeAt))
	}
	api.Use(s.withController)
	h := &handler{logger: s.logger}

	api.GET("/state", h.State)
	api.GET("/search", h.Search)
	api.POST("/back", h.Back)
	api.POST("/concierge", h.AskConcierge)
	api.POST("/navigate/:view", h.Navigate)
	api.POST("/tabs/:tab", h.ChangeTab)

	api.POST("/chefs/:id/select", h.SelectChef)
	api.POST("/favorites/:id", h.ToggleFavorite)
	api.POST("/menus/:id/book", h.BookMenu)
	api.POST("/booking", h.SubmitBooking)
	api.POST("/booking/cancel", h.CancelBooking)
	api.POST("/booking/finish", h.FinishBooking)

	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
	api.POST("/auth/dismiss", h.DismissAuth)
	api.PUT("/profile", h.UpdateProfile)

	api.POST("/chef/portal", h.EnterChefLogin)
	api.DELETE("/chef/portal", h.CancelChefLogin)
	api.POST("/chef/login", h.ChefLogin)
	api.GET("/chef/bookings", h.ChefBookings)
	api.PUT("/chefs/:id", h.UpdateChef)
	api.PUT("/chefs/:id/menus", h.SaveMenu)
	api.DELETE("/chefs/:id/menus/:menu", h.DeleteMenu)
	api.PATCH("/chefs/:id/menus/:menu/courses", h.MoveCourse)
	api.PATCH("/chefs/:id/menus/:menu/courses/:course/dishes", h.MoveDish)
	api.POST("/chefs/:id/menus/:menu/courses/:course/dishes", h.AddDish)
	api.PUT("/chefs/:id/menus/:menu/courses/:course/dishes/:idx", h.UpdateDish)
	api.DELETE("/chefs/:id/menus/:menu/courses/:course/dishes/:idx", h.DeleteDish)
	api.POST("/chefs/:id/menus/:menu/courses/:course/dishes/:idx/ingredients", h.AddIngredients)
	api.DELETE("/chefs/:id/menus/:menu/courses/:course/dishes/:idx/ingredients/:tag", h.RemoveIngredient)
	api.POST("/chefs/:id/menus/:menu/courses/:course/dishes/:idx/allergens/:label", h.ToggleAllergen)
	api.GET("/editor/draft", h.MenuDraft)
	api.GET("/editor/suggestions", h.Suggestions)

	api.POST("/admin/login-request", h.RequestAdminLogin)
	api.POST("/admin/login", h.AdminLogin)
	api.POST("/admin/cancel", h.CancelAdminLogin)
	api.POST("/admin/exit", h.ExitAdmin)
	api.GET("/admin/overview", h.AdminOverview)

	mux.NoRoute(notFound)
	return mux
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
}

func slogAddTraceAttributes(c *gin.Context) {
	sloggin.AddCustomAttributes(c,
		slog.String("trace-id", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
	)
	sloggin.AddCustomAttributes(c,
		slog.String("span-id", trace.SpanFromContext(c.Request.Context()).SpanContext().SpanID().String()),
	)
	c.Next()
}

// readOnly rejects every state changing request once the freeze time passed.
func readOnly(logger *slog.Logger, freezeAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		var span trace.Span
		ctx := c.Request.Context()
		ctx, span = tracer.Start(ctx, "Middleware.readOnly")
		defer span.End()

		if freezeAt.Before(time.Now()) && c.Request.Method != http.MethodGet {
			err := errors.New("request method not allowed")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.WarnContext(ctx, "read-only mode", "method", c.Request.Method, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"code": "READ_ONLY", "message": "bookings are paused for maintenance"})
			return
		}
		c.Next()
	}
}

func (s *Server) sessionCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": s.registry.Len()})
}

func (s *Server) evictSessions(c *gin.Context) {
	idle := 30 * time.Minute
	if v := c.Query("idle"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": err.Error()})
			return
		}
		idle = d
	}
	n := s.registry.Evict(idle)
	s.logger.InfoContext(c.Request.Context(), "evicted idle sessions", "count", n, "idle", idle)
	c.JSON(http.StatusOK, gin.H{"evicted": n, "sessions": s.registry.Len()})
}
