package usecase

import (
	"log/slog"

	"restaurant-booking/internal/domain/auth"
	"restaurant-booking/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (auth.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// ValidateToken verifies the signature and expiry and maps the claims onto a
// principal. Roles this service does not know are dropped.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (auth.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return auth.Principal{}, err
	}

	roles := make([]auth.Role, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		role, err := auth.NewRole(r)
		if err != nil {
			slog.Debug("ignoring unknown role claim", "role", r)
			continue
		}
		roles = append(roles, role)
	}

	return auth.Principal{
		UserID: claims.UserID,
		Roles:  roles,
		Access: auth.NewAccessControlList(claims.Restaurants...),
	}, nil
}
