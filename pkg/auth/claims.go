package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/demo-018/indiveg-hub/pkg/enums"
)

type Claims struct {
	UserID string         `json:"uid"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
