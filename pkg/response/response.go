package response

import (
	"github.com/gin-gonic/gin"

	"github.com/devlaunch/bootcamper/pkg/query"
)

// Envelope is the uniform JSON wrapper returned by every endpoint.
type Envelope struct {
	Success    bool              `json:"success"`
	Count      *int64            `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Data       any       `json:"data,omitempty"`
	Token      string            `json:"token,omitempty"`
	Error      any       `json:"error,omitempty"`
}

// Success writes a successful envelope carrying data.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// SuccessList writes a successful envelope for list endpoints, with count and
// pagination metadata.
func SuccessList(c *gin.Context, status int, data any, count int64, pagination query.Pagination) {
	c.JSON(status, Envelope{Success: true, Count: &count, Pagination: &pagination, Data: data})
}

// SuccessToken writes a successful envelope carrying a session token.
func SuccessToken(c *gin.Context, status int, token string) {
	c.JSON(status, Envelope{Success: true, Token: token})
}

// Error writes a failed envelope. details is optional structured error data
// (e.g. per-field validation messages); when nil the message alone is used.
func Error(c *gin.Context, status int, message string, details any) {
	body := Envelope{Success: false, Error: message}
	if details != nil {
		body.Error = gin.H{"message": message, "details": details}
	}
	c.JSON(status, body)
}

// AbortError writes a failed envelope and aborts the handler chain.
func AbortError(c *gin.Context, status int, message string, details any) {
	Error(c, status, message, details)
	c.Abort()
}
