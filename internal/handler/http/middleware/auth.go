package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	"github.com/mikiasgoitom/CampusGuide/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

const (
	CtxUserIDKey = "userID"
	CtxCallerKey = "caller"
)

// AuthMiddleWare resolves the bearer token to the current user and stores the
// caller in the context. Role and kind come from the stored user, not the
// token, so a role change applies on the next request.
func AuthMiddleWare(userUsecase usecasecontract.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing bearer token"})
			return
		}

		user, err := userUsecase.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, entity.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: entity.ErrInternal.Error()})
			return
		}

		c.Set(CtxUserIDKey, user.ID)
		c.Set(CtxCallerKey, entity.Caller{UserID: user.ID, Role: user.Role, Kind: user.Kind})
		c.Next()
	}
}

// CallerFrom returns the caller stored by AuthMiddleWare, or the zero caller.
func CallerFrom(c *gin.Context) entity.Caller {
	if v, ok := c.Get(CtxCallerKey); ok {
		if caller, ok := v.(entity.Caller); ok {
			return caller
		}
	}
	return entity.Caller{}
}

// RequireRoles rejects callers whose role is not listed.
func RequireRoles(roles ...entity.UserRole) gin.HandlerFunc {
	check := usecase.HasRole(roles...)
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		if err := usecase.Authenticated(caller, ""); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not authenticated"})
			return
		}
		if err := check(caller, ""); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "insufficient permissions"})
			return
		}
		c.Next()
	}
}
