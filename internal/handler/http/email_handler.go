package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type EmailHandler struct {
	emailVerificationUC usecasecontract.IEmailVerificationUC
}

func NewEmailHandler(eu usecasecontract.IEmailVerificationUC) *EmailHandler {
	return &EmailHandler{
		emailVerificationUC: eu,
	}
}

// HandleResendVerification issues a fresh verification link for an
// unverified account.
func (h *EmailHandler) HandleResendVerification(ctx *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := BindAndValidate(ctx, &req); err != nil {
		return
	}

	if err := h.emailVerificationUC.ResendVerification(ctx.Request.Context(), req.Email); err != nil {
		HandleError(ctx, err)
		return
	}
	MessageHandler(ctx, http.StatusOK, "Verification email sent successfully")
}

// HandleVerifyEmailToken consumes the token from the emailed link.
func (h *EmailHandler) HandleVerifyEmailToken(ctx *gin.Context) {
	user, err := h.emailVerificationUC.ConfirmEmail(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		HandleError(ctx, err)
		return
	}

	message := "Email verified successfully"
	if !user.AccountVerified {
		message += "; your account is awaiting administrator approval"
	}
	SuccessHandler(ctx, http.StatusOK, gin.H{
		"message": message,
		"user":    dto.ToUserResponse(*user),
	})
}
