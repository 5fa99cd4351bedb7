package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Wrap returns a copy of e carrying err, leaving the shared value untouched.
func (e *Error) Wrap(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Booking error types
var (
	ErrBookingFailed   = New(http.StatusInternalServerError, "Booking failed", nil)
	ErrRoomUnavailable = New(http.StatusConflict, "Room is already booked", nil)
	ErrInvalidStay     = New(http.StatusBadRequest, "Invalid stay dates", nil)
	ErrCheckoutFailed  = New(http.StatusBadGateway, "Failed to create checkout session", nil)
)

// asAppError maps any error to an *Error, falling back to a 500.
func asAppError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return ErrInternalServer.Wrap(err)
}

// HandleError writes err as a JSON response on a plain http.ResponseWriter.
func HandleError(w http.ResponseWriter, err error) {
	appErr := asAppError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}

// Error middleware for Gin
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			appErr := asAppError(c.Errors.Last().Err)
			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
