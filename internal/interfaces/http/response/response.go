package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "pay-router.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response, mapping domain sentinels to HTTP statuses.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.NewAppError(statusFor(err), err.Error(), err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainerrors.ErrMerchantNotActive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerrors.ErrNegativeAmount),
		errors.Is(err, domainerrors.ErrBadCurrency),
		errors.Is(err, domainerrors.ErrUnknownProvider),
		errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domainerrors.ErrProcessorNotRegistered):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
