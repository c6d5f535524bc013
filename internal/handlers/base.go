package handlers

import (
	"errors"
	"net/http"

	"huntboard/internal/services"
	"huntboard/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success returns a standard success response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, JSONResponse{Code: 0, Message: "success", Data: data})
}

// Fail returns a standard error response.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, JSONResponse{Code: status, Message: message})
}

// FailFromErr maps service sentinel errors to HTTP statuses. Anything
// unrecognized is a storage fault: logged, reported generically, and safe
// for the client to retry as a whole operation.
func FailFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		Fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrForbidden):
		Fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrInvalidParent):
		Fail(c, http.StatusBadRequest, "invalid parent comment")
	case errors.Is(err, services.ErrEmptyContent):
		Fail(c, http.StatusBadRequest, "comment content is empty")
	case errors.Is(err, services.ErrInvalidSlugSource):
		Fail(c, http.StatusBadRequest, "title does not yield a valid slug")
	case errors.Is(err, services.ErrConflict):
		Fail(c, http.StatusConflict, "conflict, please retry")
	default:
		utils.Logger.Error("storage failure", zap.Error(err), zap.String("path", c.FullPath()))
		Fail(c, http.StatusInternalServerError, "temporary failure, please retry")
	}
}
