package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomrent/errors"
)

const CodeOK = "OK"

// Response is the envelope of every JSON reply. Errno is the machine-readable kind.
type Response struct {
	Errno  string      `json:"errno"`
	Errmsg string      `json:"errmsg"`
	Data   interface{} `json:"data,omitempty"`
}

// Success writes data with status 200.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Errno:  CodeOK,
		Errmsg: "success",
		Data:   data,
	})
}

// Created writes data with status 201.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Errno:  CodeOK,
		Errmsg: "success",
		Data:   data,
	})
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeConflict:
		return http.StatusConflict
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusServiceUnavailable
	}
}

// Error writes err in the envelope. Infrastructure details are logged by the
// caller, never sent.
func Error(c *gin.Context, err error) {
	code := errors.CodeOf(err)
	msg := "service unavailable, retry later"
	if appErr := errors.GetAppError(err); appErr != nil && code != errors.ErrCodeInfrastructure {
		msg = appErr.Message
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusOf(code), Response{
		Errno:  string(code),
		Errmsg: msg,
	})
}

// BadRequest writes an INVALID_INPUT error.
func BadRequest(c *gin.Context, message string) {
	Error(c, errors.InvalidInput(message))
}

// Unauthorized writes an UNAUTHORIZED error.
func Unauthorized(c *gin.Context) {
	Error(c, errors.Unauthorized("login required"))
}
