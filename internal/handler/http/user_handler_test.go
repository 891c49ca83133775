package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	handler "github.com/mikiasgoitom/CampusGuide/internal/handler/http"
	dto "github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	mocks "github.com/mikiasgoitom/CampusGuide/internal/handler/http/mocks"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.RegisterCustomValidators()
	os.Exit(m.Run())
}

func setupRouter(h handler.UserHandlerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", h.CreateUser)
	r.POST("/login", h.Login)
	r.GET("/users/:id", h.GetUser)
	return r
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, path, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func studentRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		AccountKind: "student",
		Email:       "asha@university.edu",
		Password:    "Password123!",
		Name:        "Asha",
		Student:     &dto.StudentDetails{StudentID: "CS2021001", Year: 3, Branch: "CSE"},
	}
}

func TestCreateUser(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/register", studentRegistration()))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")
	assert.Contains(t, w.Body.String(), "reviewed by an administrator")
	assert.Equal(t, entity.StudentProfile{StudentID: "CS2021001", Year: 3, Branch: "CSE"}, mockUsecase.LastRegisterInput.Profile)

	var resp struct {
		User dto.UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "student", resp.User.AccountKind)
	assert.Equal(t, "pending", resp.User.VerificationStatus)
	assert.False(t, resp.User.EmailVerified)
}

func TestCreateUser_Public(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/register", dto.RegisterRequest{
		AccountKind: "public",
		Email:       "ravi@example.com",
		Password:    "Password123!",
		Name:        "Ravi",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "administrator")
	assert.Equal(t, entity.NoProfile{AccountKind: entity.AccountKindPublic}, mockUsecase.LastRegisterInput.Profile)
}

func TestCreateUser_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailCreateUser = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	// Missing required fields to trigger validation error
	payload := dto.RegisterRequest{
		AccountKind: "public",
		Email:       "test@example.com",
		// Name and Password omitted intentionally
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/register", payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "is required", resp.Details["Name"])
	assert.Equal(t, "is required", resp.Details["Password"])
}

func TestCreateUser_WeakPassword(t *testing.T) {
	r := setupRouter(handler.NewUserHandler(mocks.NewMockUserUsecase()))
	payload := studentRegistration()
	payload.Password = "password123"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/register", payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "uppercase")
}

func TestCreateUser_MismatchedDetails(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase))
	payload := studentRegistration()
	payload.Business = &dto.BusinessDetails{BusinessName: "Chai Point"}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/register", payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "business details are not accepted")
	assert.Empty(t, mockUsecase.LastRegisterInput.Email)
}

func TestCreateUser_Duplicate(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailCreateUser = true
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/register", studentRegistration()))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestLogin(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/login", dto.LoginRequest{Email: "test@example.com", Password: "Password123!"}))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mock_access_token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "mock-user-id", resp.User.ID)
}

func TestLogin_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailLogin = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/login", dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), entity.ErrInvalidCredentials.Error())
}

func TestLogin_Unverified(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailLogin = true
	mockUsecase.Err = fmt.Errorf("%w: please verify your email first", entity.ErrEmailNotVerified)
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, "POST", "/login", dto.LoginRequest{Email: "test@example.com", Password: "Password123!"}))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUser(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	userID := uuid.New().String()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/"+userID, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test@example.com")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestGetUser_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailGetByID = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	userID := uuid.New().String()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/"+userID, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}
