package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	CreateUser(*gin.Context)
	Login(*gin.Context)
	GetUser(*gin.Context)
	GetCurrentUser(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// CreateUser handles user registration (signup)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.RegisterRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		HandleError(c, err)
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}

	message := "User created successfully. Please check your email to verify your account."
	if user.Kind.RequiresAdminApproval() {
		message += " Your account will also be reviewed by an administrator."
	}
	SuccessHandler(c, http.StatusCreated, gin.H{
		"message": message,
		"user":    dto.ToUserResponse(*user),
	})
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, accessToken, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(*user),
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}

// GetUser handles retrieving user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// GetCurrentUser handles retrieving the current authenticated user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), caller.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}
