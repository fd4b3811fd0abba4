// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quixsi/luxeplate/internal/editor"
	"github.com/quixsi/luxeplate/internal/model"
	"github.com/quixsi/luxeplate/internal/parser/form"
)

// dishRef addresses a dish by chef, menu, course and position.
type dishRef struct {
	chef, menu uuid.UUID
	course     model.Course
	idx        int
}

func (h *handler) menuParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	chefID, ok := h.uuidParam(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	menuID, ok := h.uuidParam(c, "menu")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return chefID, menuID, true
}

func (h *handler) dishParams(c *gin.Context) (dishRef, bool) {
	chefID, menuID, ok := h.menuParams(c)
	if !ok {
		return dishRef{}, false
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		notFound(c)
		return dishRef{}, false
	}
	return dishRef{chef: chefID, menu: menuID, course: model.Course(c.Param("course")), idx: idx}, true
}

type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (h *handler) MoveCourse(c *gin.Context) {
	chefID, menuID, ok := h.menuParams(c)
	if !ok {
		return
	}
	var req moveRequest
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).MoveCourse(c.Request.Context(), chefID, menuID, req.From, req.To)
	h.respond(c, s, err)
}

func (h *handler) MoveDish(c *gin.Context) {
	chefID, menuID, ok := h.menuParams(c)
	if !ok {
		return
	}
	var req moveRequest
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).MoveDish(c.Request.Context(), chefID, menuID, model.Course(c.Param("course")), req.From, req.To)
	h.respond(c, s, err)
}

func (h *handler) AddDish(c *gin.Context) {
	chefID, menuID, ok := h.menuParams(c)
	if !ok {
		return
	}
	s, err := controllerFrom(c).AddDish(c.Request.Context(), chefID, menuID, model.Course(c.Param("course")))
	h.respond(c, s, err)
}

func (h *handler) UpdateDish(c *gin.Context) {
	ref, ok := h.dishParams(c)
	if !ok {
		return
	}
	var dish model.Dish
	if !h.bind(c, &dish) {
		return
	}
	s, err := controllerFrom(c).UpdateDish(c.Request.Context(), ref.chef, ref.menu, ref.course, ref.idx, dish)
	h.respond(c, s, err)
}

func (h *handler) DeleteDish(c *gin.Context) {
	ref, ok := h.dishParams(c)
	if !ok {
		return
	}
	s, err := controllerFrom(c).DeleteDish(c.Request.Context(), ref.chef, ref.menu, ref.course, ref.idx)
	h.respond(c, s, err)
}

func (h *handler) AddIngredients(c *gin.Context) {
	ref, ok := h.dishParams(c)
	if !ok {
		return
	}
	var req struct {
		Input string `json:"input"`
	}
	if !h.bind(c, &req) {
		return
	}
	s, err := controllerFrom(c).AddIngredients(c.Request.Context(), ref.chef, ref.menu, ref.course, ref.idx, req.Input)
	h.respond(c, s, err)
}

func (h *handler) RemoveIngredient(c *gin.Context) {
	ref, ok := h.dishParams(c)
	if !ok {
		return
	}
	s, err := controllerFrom(c).RemoveIngredient(c.Request.Context(), ref.chef, ref.menu, ref.course, ref.idx, c.Param("tag"))
	h.respond(c, s, err)
}

func (h *handler) ToggleAllergen(c *gin.Context) {
	ref, ok := h.dishParams(c)
	if !ok {
		return
	}
	s, err := controllerFrom(c).ToggleAllergen(c.Request.Context(), ref.chef, ref.menu, ref.course, ref.idx, c.Param("label"))
	h.respond(c, s, err)
}

// MenuDraft hands out a blank menu to start editing from.
func (h *handler) MenuDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"menu": editor.NewMenu()})
}

type suggestionQuery struct {
	Kind string   `form:"kind"`
	Term string   `form:"term"`
	Tags []string `form:"tags"`
}

// Suggestions completes ingredient input against the common ingredients and
// filters the allergen list.
func (h *handler) Suggestions(c *gin.Context) {
	q := suggestionQuery{Kind: "ingredients"}
	if err := form.Unmarshal(c.Request.URL.Query(), &q); err != nil {
		h.fail(c, err, nil)
		return
	}
	var options []string
	switch q.Kind {
	case "ingredients":
		options = editor.Suggestions(q.Tags, editor.CommonIngredients, q.Term)
	case "allergens":
		options = editor.FilterOptions(editor.Allergens, q.Term)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": "kind must be ingredients or allergens"})
		return
	}
	if options == nil {
		options = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}
