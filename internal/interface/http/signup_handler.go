package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peatti/auth-server/internal/application"
	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/pkg/response"
	"github.com/peatti/auth-server/pkg/validation"
)

// Field bounds here only cap payload size; the domain owns the real rules.
type customerFields struct {
	Name     string `json:"name" binding:"max=255"`
	Email    string `json:"email" binding:"max=320"`
	WhatsApp string `json:"whatsapp" binding:"max=20"`
	Password string `json:"password" binding:"max=64"`
}

type customerSignUpRequest struct {
	Customer *customerFields `json:"customer" binding:"required"`
}

type restaurantOwnerFields struct {
	Name     string `json:"name" binding:"max=255"`
	Email    string `json:"email" binding:"max=320"`
	WhatsApp string `json:"whatsApp" binding:"max=20"`
	Password string `json:"password" binding:"max=64"`
}

type restaurantOwnerSignUpRequest struct {
	RestaurantOwner *restaurantOwnerFields `json:"restaurantOwner" binding:"required"`
}

type SignUpHandler struct {
	Customer        *SignUpController
	RestaurantOwner *SignUpController
}

func NewSignUpHandler(customer, restaurantOwner *SignUpController) *SignUpHandler {
	return &SignUpHandler{Customer: customer, RestaurantOwner: restaurantOwner}
}

func invalidPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, response.ErrorBody{
		Name:    "InvalidPayloadError",
		Status:  string(apperror.StatusInvalid),
		Message: "invalid payload",
		Details: validation.ToDetails(err),
	})
}

// SignUpCustomer handles POST /customers/sign-up.
func (h *SignUpHandler) SignUpCustomer(c *gin.Context) {
	var req customerSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	status, resp := h.Customer.Handle(c.Request.Context(), c.GetString("request_id"), application.SignUpInput{
		Name:     req.Customer.Name,
		Email:    req.Customer.Email,
		WhatsApp: req.Customer.WhatsApp,
		Password: req.Customer.Password,
	})
	c.JSON(status, resp)
}

// SignUpRestaurantOwner handles POST /restaurant-owners/sign-up.
func (h *SignUpHandler) SignUpRestaurantOwner(c *gin.Context) {
	var req restaurantOwnerSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	status, resp := h.RestaurantOwner.Handle(c.Request.Context(), c.GetString("request_id"), application.SignUpInput{
		Name:     req.RestaurantOwner.Name,
		Email:    req.RestaurantOwner.Email,
		WhatsApp: req.RestaurantOwner.WhatsApp,
		Password: req.RestaurantOwner.Password,
	})
	c.JSON(status, resp)
}
