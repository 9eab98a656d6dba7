package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
)

// respondError maps application error codes onto HTTP statuses. Unrecognized
// errors are reported as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsCode(err, apperrors.ErrCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errorMessage(err)})
	case apperrors.IsCode(err, apperrors.ErrCodeInvalidInput),
		apperrors.IsCode(err, apperrors.ErrCodeValidationError),
		apperrors.IsCode(err, apperrors.ErrCodeFormatError):
		c.JSON(http.StatusBadRequest, gin.H{"error": errorMessage(err)})
	case apperrors.IsCode(err, apperrors.ErrCodeUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errorMessage(err)})
	case apperrors.IsCode(err, apperrors.ErrCodeForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": errorMessage(err)})
	case apperrors.IsCode(err, apperrors.ErrCodeConflict):
		c.JSON(http.StatusConflict, gin.H{"error": errorMessage(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func errorMessage(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.Message
	}
	return err.Error()
}
