package port

import (
	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
)

type TokenPayload struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(user *domain.User) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
