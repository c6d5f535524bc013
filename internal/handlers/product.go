package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"huntboard/internal/middleware"
	"huntboard/internal/models"
	"huntboard/internal/services"
	"huntboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products  *services.ProductService
	detailTTL time.Duration
}

func NewProductHandler(products *services.ProductService, detailTTL time.Duration) *ProductHandler {
	return &ProductHandler{products: products, detailTTL: detailTTL}
}

func detailCacheKey(slug string) string {
	return fmt.Sprintf("product:detail:%s", slug)
}

// List returns approved products newest-first.
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	products, total, err := h.products.List(c.Request.Context(), page, 30)
	if err != nil {
		FailFromErr(c, err)
		return
	}
	Success(c, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
	})
}

// Detail returns one product with its rendered description. Pending or
// rejected submissions are only visible to their owner.
func (h *ProductHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	var product *models.Product
	if cached := utils.GetCache().Get(detailCacheKey(slug)); cached != nil {
		product = cached.(*models.Product)
	} else {
		var err error
		product, err = h.products.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			FailFromErr(c, err)
			return
		}
		if product.Status == models.StatusApproved {
			utils.GetCache().Set(detailCacheKey(slug), product, h.detailTTL)
		}
	}

	if product.Status != models.StatusApproved {
		viewer, exists := c.Get(middleware.CheckUserKey)
		if !exists || viewer.(*models.User).ID != product.OwnerID {
			Fail(c, http.StatusNotFound, "not found")
			return
		}
	}

	Success(c, gin.H{
		"product":          product,
		"description_html": utils.RenderMarkdown(product.Description),
	})
}

// Create submits a new product. It lands in pending state until moderation
// approves it.
func (h *ProductHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, http.StatusBadRequest, "invalid payload")
		return
	}

	product, err := h.products.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		FailFromErr(c, err)
		return
	}
	Success(c, product)
}

// Update edits an owned product, re-resolving the slug when the title
// changed.
func (h *ProductHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	slug := c.Param("slug")

	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, http.StatusBadRequest, "invalid payload")
		return
	}

	product, err := h.products.Update(c.Request.Context(), slug, user.ID, in)
	if err != nil {
		FailFromErr(c, err)
		return
	}

	// The slug may have moved; drop both cache entries.
	utils.GetCache().Delete(detailCacheKey(slug))
	utils.GetCache().Delete(detailCacheKey(product.Slug))
	Success(c, product)
}

// Delete removes an owned product and, transitively, its votes and
// comments.
func (h *ProductHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	slug := c.Param("slug")

	if err := h.products.Delete(c.Request.Context(), slug, user.ID); err != nil {
		FailFromErr(c, err)
		return
	}
	utils.GetCache().Delete(detailCacheKey(slug))
	Success(c, nil)
}
