package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the payload written for every failed request.
type ErrorBody struct {
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// JSON writes body with the request id attached.
func JSON(ctx *gin.Context, status int, body gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	if body == nil {
		body = gin.H{}
	}
	if rid := ctx.GetString("request_id"); rid != "" {
		body["request_id"] = rid
	}
	ctx.JSON(status, body)
}

// Message writes {"message": msg}.
func Message(ctx *gin.Context, status int, msg string) {
	JSON(ctx, status, gin.H{"message": msg})
}

// Error writes an ErrorBody and aborts the chain.
func Error(ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{
		Error:     message,
		Details:   details,
		RequestID: ctx.GetString("request_id"),
	})
}
