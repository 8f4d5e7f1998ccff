package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sepnoty-tech/sepnoty-api/logger"
)

// Error codes. Payment integrity failures are deliberately separate from
// plain validation so a forged callback is distinguishable from a typo.
const (
	CodeValidation       = "validation"
	CodeNotFound         = "not_found"
	CodeStock            = "insufficient_stock"
	CodePaymentIntegrity = "payment_integrity"
	CodeAuth             = "unauthorized"
	CodeForbidden        = "forbidden"
)

type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func Validation(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(what string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: what + " not found"}
}

func Stock(productName string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeStock, Message: "Insufficient stock for " + productName}
}

func PaymentIntegrity(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodePaymentIntegrity, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeAuth, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// Fail writes the JSON error response for err. Unknown errors become an
// opaque 500; store failures must never look like empty data to the client.
func Fail(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"success": false, "code": apiErr.Code, "message": apiErr.Message})
		return
	}
	logger.L().Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
