// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jeremywohl/flatten/v2"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/controller"
	"github.com/quixsi/luxeplate/internal/model"
	"github.com/quixsi/luxeplate/internal/parser/form"
	"github.com/quixsi/luxeplate/internal/payment"
)

type handler struct {
	logger *slog.Logger
}

// respond writes the sanitized state. Failed operations carry the error next
// to the state so the client can still render the screen it ended up on.
func (h *handler) respond(c *gin.Context, s controller.State, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"state": s.Public()})
		return
	}
	h.fail(c, err, gin.H{"state": s.Public()})
}

func (h *handler) fail(c *gin.Context, err error, extra gin.H) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		span := trace.SpanFromContext(c.Request.Context())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.ErrorContext(c.Request.Context(), "request failed", "error", err)
	}
	c.Error(err)
	body := gin.H{"code": code, "message": err.Error()}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func (h *handler) bind(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": err.Error()})
		return false
	}
	return true
}

func (h *handler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		notFound(c)
		return uuid.Nil, false
	}
	return id, true
}

func (h *handler) State(c *gin.Context) {
	h.respond(c, controllerFrom(c).Snapshot(), nil)
}

func (h *handler) Search(c *gin.Context) {
	ctrl := controllerFrom(c)
	params := ctrl.Snapshot().Search
	if err := form.Unmarshal(c.Request.URL.Query(), &params); err != nil {
		h.fail(c, err, nil)
		return
	}
	s, err := ctrl.Search(c.Request.Context(), params)
	h.respond(c, s, err)
}

func (h *handler) Back(c *gin.Context) {
	s, err := controllerFrom(c).Back(c.Request.Context())
	h.respond(c, s, err)
}

func (h *handler) AskConcierge(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).AskConcierge(c.Request.Context(), req.Prompt)
	h.respond(c, s, err)
}

func (h *handler) Navigate(c *gin.Context) {
	var view controller.View
	if err := view.UnmarshalText([]byte(c.Param("view"))); err != nil {
		notFound(c)
		return
	}
	s, err := controllerFrom(c).Navigate(c.Request.Context(), view)
	h.respond(c, s, err)
}

func (h *handler) ChangeTab(c *gin.Context) {
	var tab controller.Tab
	if err := tab.UnmarshalText([]byte(c.Param("tab"))); err != nil {
		notFound(c)
		return
	}
	s, err := controllerFrom(c).ChangeTab(c.Request.Context(), tab)
	h.respond(c, s, err)
}

func (h *handler) SelectChef(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := controllerFrom(c).SelectChef(c.Request.Context(), id)
	h.respond(c, s, err)
}

func (h *handler) ToggleFavorite(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := controllerFrom(c).ToggleFavorite(c.Request.Context(), id)
	h.respond(c, s, err)
}

func (h *handler) BookMenu(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := controllerFrom(c).BookMenu(c.Request.Context(), id)
	h.respond(c, s, err)
}

func (h *handler) SubmitBooking(c *gin.Context) {
	var req struct {
		model.BookingDetails
		Card payment.Card `json:"card"`
	}
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).SubmitBooking(c.Request.Context(), req.BookingDetails, req.Card)
	h.respond(c, s, err)
}

func (h *handler) CancelBooking(c *gin.Context) {
	s, err := controllerFrom(c).CancelBooking(c.Request.Context())
	h.respond(c, s, err)
}

func (h *handler) FinishBooking(c *gin.Context) {
	s, err := controllerFrom(c).FinishBooking(c.Request.Context())
	h.respond(c, s, err)
}

type credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handler) Login(c *gin.Context) {
	var req credentials
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).Login(c.Request.Context(), req.Email, req.Password)
	h.respond(c, s, err)
}

func (h *handler) Register(c *gin.Context) {
	var req struct {
		credentials
		Name string     `json:"name" binding:"required"`
		Role model.Role `json:"role"`
	}
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	h.respond(c, s, err)
}

func (h *handler) Logout(c *gin.Context) {
	s, err := controllerFrom(c).Logout(c.Request.Context())
	h.respond(c, s, err)
}

func (h *handler) DismissAuth(c *gin.Context) {
	h.respond(c, controllerFrom(c).DismissAuth(c.Request.Context()), nil)
}

func (h *handler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
	}
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).UpdateProfile(c.Request.Context(), req.Name, req.Email, req.Avatar)
	h.respond(c, s, err)
}

func (h *handler) EnterChefLogin(c *gin.Context) {
	h.respond(c, controllerFrom(c).EnterChefLogin(c.Request.Context()), nil)
}

func (h *handler) CancelChefLogin(c *gin.Context) {
	h.respond(c, controllerFrom(c).CancelChefLogin(c.Request.Context()), nil)
}

func (h *handler) ChefLogin(c *gin.Context) {
	var req credentials
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).ChefLogin(c.Request.Context(), req.Email, req.Password)
	h.respond(c, s, err)
}

func (h *handler) ChefBookings(c *gin.Context) {
	bookings, err := controllerFrom(c).ChefBookings(c.Request.Context())
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *handler) UpdateChef(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var chef model.Chef
	if !h.bind(c, &chef) {
		return
	}
	chef.ID = id
	s, err := controllerFrom(c).UpdateChef(c.Request.Context(), &chef)
	h.respond(c, s, err)
}

func (h *handler) SaveMenu(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var menu model.Menu
	if !h.bind(c, &menu) {
		return
	}
	s, err := controllerFrom(c).SaveMenu(c.Request.Context(), id, &menu)
	h.respond(c, s, err)
}

func (h *handler) DeleteMenu(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	menuID, ok := h.uuidParam(c, "menu")
	if !ok {
		return
	}
	s, err := controllerFrom(c).DeleteMenu(c.Request.Context(), id, menuID)
	h.respond(c, s, err)
}

func (h *handler) RequestAdminLogin(c *gin.Context) {
	s, err := controllerFrom(c).RequestAdminLogin(c.Request.Context())
	h.respond(c, s, err)
}

func (h *handler) AdminLogin(c *gin.Context) {
	var req credentials
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).AdminLogin(c.Request.Context(), req.Email, req.Password)
	h.respond(c, s, err)
}

func (h *handler) CancelAdminLogin(c *gin.Context) {
	s, err := controllerFrom(c).CancelAdminLogin(c.Request.Context())
	h.respond(c, s, err)
}

func (h *handler) ExitAdmin(c *gin.Context) {
	s, err := controllerFrom(c).ExitAdmin(c.Request.Context())
	h.respond(c, s, err)
}

// AdminOverview returns the dashboard figures. With ?flat=true nested values
// are flattened to dotted keys for spreadsheet exports.
func (h *handler) AdminOverview(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "handler.AdminOverview")
	defer span.End()

	overview, err := controllerFrom(c).AdminOverview(ctx)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	if c.Query("flat") != "true" {
		c.JSON(http.StatusOK, overview)
		return
	}

	out, err := json.Marshal(overview)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	flattened, err := flatten.FlattenString(string(out), "", flatten.DotStyle)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	result := make(map[string]any)
	if err := json.Unmarshal([]byte(flattened), &result); err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, result)
}
