// Package response holds the JSON envelope every cart endpoint answers with.
package response

import "github.com/gin-gonic/gin"

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	NextCursor string `json:"next_cursor,omitempty"`
	Replayed   bool   `json:"replayed,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

type APIResponse struct {
	Data  any       `json:"data,omitempty"`
	Error *APIError `json:"error,omitempty"`
	Meta  *Meta     `json:"meta,omitempty"`
}

func RespondOK(c *gin.Context, status int, data any, meta *Meta) {
	c.JSON(status, APIResponse{
		Data: data,
		Meta: meta,
	})
}

func RespondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, APIResponse{
		Error: &APIError{Code: code, Message: message},
	})
}
