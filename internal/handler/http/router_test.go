package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	handler "github.com/mikiasgoitom/CampusGuide/internal/handler/http"
	dto "github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/middleware"
	mocks "github.com/mikiasgoitom/CampusGuide/internal/handler/http/mocks"
)

type testAPI struct {
	engine  *gin.Engine
	users   *mocks.MockUserUsecase
	email   *mocks.MockEmailVerificationUC
	places  *mocks.MockPlaceUsecase
	reviews *mocks.MockReviewUsecase
	vehicle *mocks.MockVehicleUsecase
	admin   *mocks.MockAdminUsecase
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestAPI(health handler.HealthChecker) *testAPI {
	api := &testAPI{
		users:   mocks.NewMockUserUsecase(),
		email:   mocks.NewMockEmailVerificationUC(),
		places:  mocks.NewMockPlaceUsecase(),
		reviews: mocks.NewMockReviewUsecase(),
		vehicle: mocks.NewMockVehicleUsecase(),
		admin:   mocks.NewMockAdminUsecase(),
	}
	api.engine = gin.New()
	handler.NewRouter(handler.RouterDeps{
		UserUsecase:    api.users,
		EmailUsecase:   api.email,
		PlaceUsecase:   api.places,
		ReviewUsecase:  api.reviews,
		VehicleUsecase: api.vehicle,
		AdminUsecase:   api.admin,
		Health:         health,
	}).SetupRoutes(api.engine)
	return api
}

func (api *testAPI) as(role entity.UserRole, kind entity.AccountKind) *testAPI {
	api.users.MockUser.Role = role
	api.users.MockUser.Kind = kind
	return api
}

func (api *testAPI) do(t *testing.T, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := jsonRequest(t, method, path, payload)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := newTestAPI(nil).do(t, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	down := newTestAPI(pingFunc(func(context.Context) error { return errors.New("no primary") }))
	w = down.do(t, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	api := newTestAPI(nil)

	w := api.do(t, "GET", "/health", nil, "")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req := jsonRequest(t, "GET", "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		w := newTestAPI(nil).do(t, "GET", "/api/v1/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		api := newTestAPI(nil)
		api.users.ShouldFailAuthenticate = true
		w := api.do(t, "GET", "/api/v1/me", nil, "expired")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "expired", api.users.LastAccessToken)
	})

	t.Run("lookup failure is internal", func(t *testing.T) {
		api := newTestAPI(nil)
		api.users.ShouldFailAuthenticate = true
		api.users.Err = errors.New("connection reset")
		w := api.do(t, "GET", "/api/v1/me", nil, "tok")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})

	t.Run("current user", func(t *testing.T) {
		w := newTestAPI(nil).do(t, "GET", "/api/v1/me", nil, "tok")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "mock-user-id")
	})
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	api := newTestAPI(nil)
	w := api.do(t, "GET", "/api/v1/admin/stats", nil, "tok")
	assert.Equal(t, http.StatusForbidden, w.Code)

	api.as(entity.UserRoleAdmin, entity.AccountKindAdmin)
	w = api.do(t, "GET", "/api/v1/admin/stats", nil, "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["pending_verifications"])
}

func TestSetUserRoleRequiresSuperAdmin(t *testing.T) {
	api := newTestAPI(nil).as(entity.UserRoleAdmin, entity.AccountKindAdmin)
	body := dto.SetRoleRequest{Role: "admin"}

	w := api.do(t, "PUT", "/api/v1/admin/users/u2/role", body, "tok")
	assert.Equal(t, http.StatusForbidden, w.Code)

	api.as(entity.UserRoleSuperAdmin, entity.AccountKindAdmin)
	w = api.do(t, "PUT", "/api/v1/admin/users/u2/role", body, "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.UserRoleAdmin, api.admin.LastRole)

	w = api.do(t, "PUT", "/api/v1/admin/users/u2/role", dto.SetRoleRequest{Role: "owner"}, "tok")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyAccount(t *testing.T) {
	t.Run("student route decides student accounts", func(t *testing.T) {
		api := newTestAPI(nil).as(entity.UserRoleAdmin, entity.AccountKindAdmin)
		w := api.do(t, "PUT", "/api/v1/admin/students/student-id/verify",
			dto.VerifyAccountRequest{Decision: "rejected", Reason: "ID card unreadable"}, "tok")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entity.AccountKindStudent, api.admin.LastKind)
		assert.Equal(t, entity.VerificationRejected, api.admin.LastDecision)
		assert.Equal(t, "mock-user-id", api.admin.LastCaller.UserID)
		assert.Contains(t, w.Body.String(), "ID card unreadable")
	})

	t.Run("business route", func(t *testing.T) {
		api := newTestAPI(nil).as(entity.UserRoleAdmin, entity.AccountKindAdmin)
		api.do(t, "PUT", "/api/v1/admin/businesses/b1/verify", dto.VerifyAccountRequest{Decision: "approved"}, "tok")
		assert.Equal(t, entity.AccountKindBusiness, api.admin.LastKind)
	})

	t.Run("unknown decision", func(t *testing.T) {
		api := newTestAPI(nil).as(entity.UserRoleAdmin, entity.AccountKindAdmin)
		w := api.do(t, "PUT", "/api/v1/admin/students/s1/verify", dto.VerifyAccountRequest{Decision: "pending"}, "tok")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong kind is not found", func(t *testing.T) {
		api := newTestAPI(nil).as(entity.UserRoleAdmin, entity.AccountKindAdmin)
		api.admin.ShouldFailDecide = true
		w := api.do(t, "PUT", "/api/v1/admin/students/b1/verify", dto.VerifyAccountRequest{Decision: "approved"}, "tok")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListPending(t *testing.T) {
	api := newTestAPI(nil).as(entity.UserRoleAdmin, entity.AccountKindAdmin)
	w := api.do(t, "GET", "/api/v1/admin/businesses/pending?page=1&page_size=5", nil, "tok")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.AccountKindBusiness, api.admin.LastKind)

	var resp dto.ListResponse[dto.UserResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 5, resp.Pagination.PageSize)
	assert.EqualValues(t, 1, resp.Pagination.TotalItems)
}

func TestModerateReview(t *testing.T) {
	api := newTestAPI(nil).as(entity.UserRoleAdmin, entity.AccountKindAdmin)

	w := api.do(t, "PUT", "/api/v1/admin/reviews/r1/moderate", dto.ModerateReviewRequest{Action: "hide", Note: "spam"}, "tok")
	require.Equal(t, http.StatusOK, w.Code)
	var review entity.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &review))
	assert.True(t, review.IsHidden)
	assert.Equal(t, "spam", review.ModerationNote)

	w = api.do(t, "PUT", "/api/v1/admin/reviews/r1/moderate", dto.ModerateReviewRequest{Action: "delete"}, "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Review deleted successfully")

	w = api.do(t, "PUT", "/api/v1/admin/reviews/r1/moderate", dto.ModerateReviewRequest{Action: "archive"}, "tok")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, "GET", "/api/v1/admin/reviews/flagged", nil, "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_flagged":true`)
}

func TestVerifyEmailRoutes(t *testing.T) {
	api := newTestAPI(nil)

	w := api.do(t, "GET", "/api/v1/auth/verify-email/abc123", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", api.email.LastToken)
	assert.NotContains(t, w.Body.String(), "awaiting administrator approval")

	api.email.MockUser.AccountVerified = false
	w = api.do(t, "GET", "/api/v1/auth/verify-email/abc123", nil, "")
	assert.Contains(t, w.Body.String(), "awaiting administrator approval")

	api.email.ShouldFailConfirm = true
	w = api.do(t, "GET", "/api/v1/auth/verify-email/used", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, "POST", "/api/v1/auth/resend-verification", dto.ResendVerificationRequest{Email: "ravi@example.com"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ravi@example.com", api.email.LastEmail)

	api.email.ShouldFailResend = true
	w = api.do(t, "POST", "/api/v1/auth/resend-verification", dto.ResendVerificationRequest{Email: "ravi@example.com"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}
