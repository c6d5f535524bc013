package router

import (
	"huntboard/internal/config"
	"huntboard/internal/handlers"
	"huntboard/internal/middleware"
	"huntboard/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, gdb *gorm.DB, cfg config.AppConfig) {
	// Services
	slugs := services.NewSlugResolver(gdb)
	products := services.NewProductService(gdb, slugs)
	ledger := services.NewVoteLedger(gdb)
	comments := services.NewCommentService(gdb)
	categories := services.NewCategoryService(gdb, slugs)

	// Handlers
	productHandler := handlers.NewProductHandler(products, cfg.DetailCacheTTL)
	voteHandler := handlers.NewVoteHandler(ledger, products)
	commentHandler := handlers.NewCommentHandler(comments, products, cfg.ThreadCacheTTL)
	categoryHandler := handlers.NewCategoryHandler(categories)

	r.Use(middleware.LoadUser(gdb))

	// Public routes
	r.GET("/products", productHandler.List)                    // Approved listings
	r.GET("/products/:slug", productHandler.Detail)            // Product detail
	r.GET("/products/:slug/comments", commentHandler.Thread)   // Assembled comment tree
	r.GET("/categories", categoryHandler.List)                 // All categories

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/products", productHandler.Create)                 // Submit a product
		authorized.PUT("/products/:slug", productHandler.Update)            // Edit own product
		authorized.DELETE("/products/:slug", productHandler.Delete)         // Delete own product
		authorized.POST("/products/:slug/vote", voteHandler.Toggle)         // Toggle upvote
		authorized.POST("/products/:slug/comments", commentHandler.Create)  // Comment or reply
		authorized.DELETE("/comments/:id", commentHandler.Delete)           // Delete own comment
		authorized.POST("/categories", categoryHandler.Create)              // Add a category
	}
}
