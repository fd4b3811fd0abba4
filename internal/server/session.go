// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/controller"
)

const (
	cookieName    = "luxeplate"
	cookieSIDKey  = "sid"
	controllerKey = "controller"
)

// withController resolves the browser session cookie to its controller. A
// missing or unreadable cookie starts a new session.
func (s *Server) withController(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Middleware.withController")
	defer span.End()

	session, err := s.cookies.Get(c.Request, cookieName)
	if err != nil {
		span.AddEvent("discard unreadable cookie")
	}
	sid, _ := session.Values[cookieSIDKey].(string)
	if sid == "" {
		sid = uuid.NewString()
		session.Values[cookieSIDKey] = sid
		if err := session.Save(c.Request, c.Writer); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.ErrorContext(ctx, "could not save session cookie", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL", "message": "could not start session"})
			return
		}
	}

	ctrl, err := s.registry.Get(ctx, sid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "could not load session", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL", "message": "could not load session"})
		return
	}
	c.Set(controllerKey, ctrl)
	c.Next()
}

func controllerFrom(c *gin.Context) *controller.Controller {
	return c.MustGet(controllerKey).(*controller.Controller)
}
