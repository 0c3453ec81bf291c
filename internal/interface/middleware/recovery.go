package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/pkg/helpers"
	"github.com/peatti/auth-server/pkg/response"
)

// Recovery answers panics with the generic internal error envelope and logs the stack.
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		helpers.LogError(logger, "panic recovered", fmt.Errorf("%v", recovered), logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"stack":      string(debug.Stack()),
		})
		response.Error[any](c, http.StatusInternalServerError, response.ErrorBody{
			Name:    string(apperror.KindInternal),
			Status:  string(apperror.StatusInternal),
			Message: apperror.UnexpectedMessage,
		})
	})
}
