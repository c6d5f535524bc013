package middleware

import (
	"net/http"
	"strconv"

	"huntboard/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"

// identityHeader is set by the upstream gateway after it authenticates the
// request. Session and credential handling live entirely on that side.
const identityHeader = "X-User-ID"

// LoadUser resolves the gateway-forwarded identity to a user row and puts
// it on the request context.
func LoadUser(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if idStr := c.GetHeader(identityHeader); idStr != "" {
			if id, err := strconv.ParseUint(idStr, 10, 64); err == nil {
				var user models.User
				if gdb.First(&user, uint(id)).Error == nil {
					c.Set(CheckUserKey, &user)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired ensures an authenticated user was loaded.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the loaded user for a request behind AuthRequired.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(CheckUserKey).(*models.User)
}
