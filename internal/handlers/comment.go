package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"huntboard/internal/middleware"
	"huntboard/internal/services"
	"huntboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
	products *services.ProductService
	cacheTTL time.Duration
}

func NewCommentHandler(comments *services.CommentService, products *services.ProductService, cacheTTL time.Duration) *CommentHandler {
	return &CommentHandler{comments: comments, products: products, cacheTTL: cacheTTL}
}

func threadCacheKey(productID uint) string {
	return fmt.Sprintf("comment:thread:%d", productID)
}

type createCommentInput struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

// Thread returns the product's assembled two-level comment tree, cached
// briefly and invalidated on every write.
func (h *CommentHandler) Thread(c *gin.Context) {
	product, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		FailFromErr(c, err)
		return
	}

	if cached := utils.GetCache().Get(threadCacheKey(product.ID)); cached != nil {
		Success(c, cached)
		return
	}

	thread, err := h.comments.GetThread(c.Request.Context(), product.ID)
	if err != nil {
		FailFromErr(c, err)
		return
	}

	utils.GetCache().Set(threadCacheKey(product.ID), thread, h.cacheTTL)
	Success(c, thread)
}

// Create posts a comment or reply on a product.
func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	product, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		FailFromErr(c, err)
		return
	}

	var in createCommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, http.StatusBadRequest, "invalid payload")
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), product.ID, user.ID, in.Content, in.ParentID)
	if err != nil {
		FailFromErr(c, err)
		return
	}

	utils.GetCache().Delete(threadCacheKey(product.ID))
	utils.GetCache().Delete(detailCacheKey(product.Slug))
	Success(c, comment)
}

// Delete removes the caller's own comment along with its direct replies.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, _ := strconv.Atoi(c.Param("id"))

	product, err := h.comments.Delete(c.Request.Context(), uint(id), user.ID)
	if err != nil {
		FailFromErr(c, err)
		return
	}

	utils.GetCache().Delete(threadCacheKey(product.ID))
	utils.GetCache().Delete(detailCacheKey(product.Slug))
	Success(c, nil)
}
