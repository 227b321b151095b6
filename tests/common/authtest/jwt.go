//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"restaurant-booking/internal/domain/auth"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// MaitreDToken grants the MaitreD role over the given restaurants.
func (h *JWTHelper) MaitreDToken(t *testing.T, restaurants ...int) string {
	t.Helper()
	return h.GenerateToken(t, []string{string(auth.RoleMaitreD)}, restaurants...)
}

func (h *JWTHelper) GenerateToken(t *testing.T, roles []string, restaurants ...int) string {
	t.Helper()
	duration, err := h.cfg.TokenDuration()
	require.NoError(t, err)
	return h.sign(t, duration, roles, restaurants)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, restaurants ...int) string {
	t.Helper()
	token := h.sign(t, time.Millisecond, []string{string(auth.RoleMaitreD)}, restaurants)
	time.Sleep(10 * time.Millisecond)
	return token
}

func (h *JWTHelper) sign(t *testing.T, d time.Duration, roles []string, restaurants []int) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, d)
	token, err := service.GenerateToken(uuid.New(), roles, restaurants)
	require.NoError(t, err)
	return token
}
