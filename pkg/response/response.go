package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peatti/auth-server/internal/domain/apperror"
)

// APIResponse is the envelope every endpoint answers with.
// Exactly one of Success and Error is set.
type APIResponse[T any] struct {
	Timestamp time.Time  `json:"timestamp"`
	RequestID string     `json:"request_id"`
	Success   *T         `json:"success"`
	Error     *ErrorBody `json:"error"`
}

type ErrorBody struct {
	Name    string            `json:"name"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func OK[T any](requestID string, data T) APIResponse[T] {
	return APIResponse[T]{Timestamp: time.Now().UTC(), RequestID: requestID, Success: &data}
}

func Fail[T any](requestID string, body ErrorBody) APIResponse[T] {
	return APIResponse[T]{Timestamp: time.Now().UTC(), RequestID: requestID, Error: &body}
}

// FromError maps err to an HTTP status and error body. Untyped errors become a
// generic internal error so no detail leaks to the client.
func FromError(err error) (int, ErrorBody) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}
	message := appErr.Message
	if appErr.Status == apperror.StatusInternal && appErr.Kind == apperror.KindInternal {
		message = apperror.UnexpectedMessage
	}
	return appErr.HTTPStatus(), ErrorBody{
		Name:    string(appErr.Kind),
		Status:  string(appErr.Status),
		Message: message,
	}
}

// Error writes an error envelope and aborts the chain.
func Error[T any](ctx *gin.Context, status int, body ErrorBody) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := Fail[T](ctx.GetString("request_id"), body)
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}
