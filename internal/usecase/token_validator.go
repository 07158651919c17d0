package usecase

import (
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidToken = errs.New("invalid or expired token")

// TokenValidator turns a bearer token into the claims checkout cares
// about. Token issuance lives in the external identity service.
type TokenValidator interface {
	ValidateToken(token string) (userID uuid.UUID, newUser bool, err error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) ValidateToken(token string) (uuid.UUID, bool, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, false, errs.Mark(err, ErrInvalidToken)
	}
	return claims.UserID, claims.NewUser, nil
}
