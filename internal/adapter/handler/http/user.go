package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"github.com/sgladkov/storefront/internal/core/utils"
	"go.uber.org/zap"
)

type UserHandler struct {
	Handler
	service port.Service
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type userResponse struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

func (uh *UserHandler) RegisterUser(ctx *gin.Context) {
	req := registerRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		uh.handleError(ctx, domain.ErrInternal)
		return
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}

	created, err := uh.service.RegisterUser(ctx, user)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccessWithStatus(ctx, userResponse{
		ID:    created.ID.String(),
		Name:  created.Name,
		Email: created.Email,
	}, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token      string       `json:"token"`
	User       userResponse `json:"user"`
	RedirectTo string       `json:"redirectTo"`
}

func (uh *UserHandler) LoginUser(ctx *gin.Context) {
	req := loginRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	token, user, err := uh.service.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	redirect := "/"
	if user.Role == domain.RoleAdmin {
		redirect = "/admin/all-products"
	}

	uh.handleSuccess(ctx, loginResponse{
		Token: token,
		User: userResponse{
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
		RedirectTo: redirect,
	})
}
