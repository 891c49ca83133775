package jwt

import (
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	"github.com/mikiasgoitom/CampusGuide/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

// GenerateAccessToken issues an access token for a user.
func (a *JWTServiceAdapter) GenerateAccessToken(userID string, role entity.UserRole, kind entity.AccountKind) (string, error) {
	return a.mgr.GenerateAccessToken(userID, string(role), string(kind))
}

// ParseAccessToken validates an access token and returns Claims.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (*entity.Claims, error) {
	customClaims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}
	return &entity.Claims{
		UserID:           customClaims.Subject,
		Role:             entity.UserRole(customClaims.Role),
		Kind:             entity.AccountKind(customClaims.Kind),
		RegisteredClaims: customClaims.RegisteredClaims,
	}, nil
}
