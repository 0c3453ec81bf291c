package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/internal/application"
	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/entity"
	"github.com/peatti/auth-server/pkg/helpers"
	"github.com/peatti/auth-server/pkg/response"
)

// PlaceholderAccessToken is returned until token issuance exists.
const PlaceholderAccessToken = "test"

type SignUpSuccess struct {
	AccessToken string `json:"access_token"`
	Message     string `json:"message"`
	Status      string `json:"status"`
}

// SignUpExecutor is the use case a controller drives.
type SignUpExecutor interface {
	Execute(ctx context.Context, in application.SignUpInput) (*application.SignUpOutput, error)
}

// SignUpController turns a sign-up request into the response envelope for one role.
type SignUpController struct {
	UseCase SignUpExecutor
	Role    entity.Role
	Logger  logrus.FieldLogger
}

func NewSignUpController(uc SignUpExecutor, role entity.Role, logger logrus.FieldLogger) *SignUpController {
	return &SignUpController{UseCase: uc, Role: role, Logger: logger}
}

func (h *SignUpController) name() string {
	if h.Role == entity.RoleRestaurantOwner {
		return "SignUpRestaurantOwnerController"
	}
	return "SignUpCustomerController"
}

// Handle runs the use case. Typed failures keep their status and message; anything
// else, panics included, is logged in full and answered with a generic 500.
func (h *SignUpController) Handle(ctx context.Context, requestID string, in application.SignUpInput) (status int, resp response.APIResponse[SignUpSuccess]) {
	started := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			helpers.LogError(h.Logger, h.name()+" unexpected error", fmt.Errorf("panic: %v", rec), logrus.Fields{
				"request_id": requestID,
				"stack":      string(debug.Stack()),
			})
			status = http.StatusInternalServerError
			resp = response.Fail[SignUpSuccess](requestID, response.ErrorBody{
				Name:    string(apperror.KindInternal),
				Status:  string(apperror.StatusInternal),
				Message: apperror.UnexpectedMessage,
			})
		}
		helpers.LogTime(h.Logger, helpers.LayerController, h.name(), "Handle", started, status < http.StatusBadRequest)
	}()

	if _, err := h.UseCase.Execute(ctx, in); err != nil {
		code, body := response.FromError(err)
		if code >= http.StatusInternalServerError {
			helpers.LogError(h.Logger, h.name()+" failed", err, logrus.Fields{"request_id": requestID, "kind": body.Name})
		}
		return code, response.Fail[SignUpSuccess](requestID, body)
	}

	return http.StatusCreated, response.OK(requestID, SignUpSuccess{
		AccessToken: PlaceholderAccessToken,
		Message:     h.Role.Title() + " signed up successfully",
		Status:      "CREATED",
	})
}
