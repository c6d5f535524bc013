package handlers

import (
	"huntboard/internal/middleware"
	"huntboard/internal/services"
	"huntboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	ledger   *services.VoteLedger
	products *services.ProductService
}

func NewVoteHandler(ledger *services.VoteLedger, products *services.ProductService) *VoteHandler {
	return &VoteHandler{ledger: ledger, products: products}
}

// Toggle flips the caller's vote on a product and reports the new state
// together with the cached aggregate count.
func (h *VoteHandler) Toggle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	product, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		FailFromErr(c, err)
		return
	}

	upvoted, err := h.ledger.Toggle(c.Request.Context(), product.ID, user.ID)
	if err != nil {
		FailFromErr(c, err)
		return
	}

	count, err := h.ledger.Count(c.Request.Context(), product.ID)
	if err != nil {
		FailFromErr(c, err)
		return
	}

	// The cached detail payload carries upvote_count; drop it so the next
	// read sees the new aggregate.
	utils.GetCache().Delete(detailCacheKey(product.Slug))

	Success(c, gin.H{
		"upvoted":      upvoted,
		"upvote_count": count,
	})
}
