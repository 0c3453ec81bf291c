package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/peatti/auth-server/internal/interface/http"
)

// SignUpModule exposes account registration:
// POST /api/customers/sign-up, POST /api/restaurant-owners/sign-up
type SignUpModule struct {
	Handler *handlers.SignUpHandler
}

func NewSignUpModule(h *handlers.SignUpHandler) *SignUpModule {
	return &SignUpModule{Handler: h}
}

func (m *SignUpModule) Register(rg *gin.RouterGroup) {
	rg.POST("/customers/sign-up", m.Handler.SignUpCustomer)
	rg.POST("/restaurant-owners/sign-up", m.Handler.SignUpRestaurantOwner)
}
