package handlers

import (
	"net/http"

	"huntboard/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List returns all categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		FailFromErr(c, err)
		return
	}
	Success(c, categories)
}

type createCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// Create adds a category; its slug goes through the same resolver as
// product slugs.
func (h *CategoryHandler) Create(c *gin.Context) {
	var in createCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, http.StatusBadRequest, "invalid payload")
		return
	}

	category, err := h.categories.Create(c.Request.Context(), in.Name)
	if err != nil {
		FailFromErr(c, err)
		return
	}
	Success(c, category)
}
