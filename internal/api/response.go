package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope of every API reply.
type Response struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *ErrorBody  `json:"error,omitempty"` // error details
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error codes.
const (
	CodeInvalidID      = "INVALID_ID"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeDatabaseError  = "DATABASE_ERROR"
	CodeSessionError   = "SESSION_ERROR"
	CodeInvalidWelcome = "INVALID_WELCOME"
)

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Status: "ok", Data: data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, Response{
		Status: "error",
		Error:  &ErrorBody{Code: code, Message: message, Details: details},
	})
}
