package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// AdminHandler serves the moderation surface. Routes are mounted behind
// RequireRoles(admin, super_admin); the usecases check again.
type AdminHandler struct {
	adminUsecase  usecasecontract.IAdminUseCase
	reviewUsecase usecasecontract.IReviewUseCase
}

func NewAdminHandler(adminUsecase usecasecontract.IAdminUseCase, reviewUsecase usecasecontract.IReviewUseCase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase, reviewUsecase: reviewUsecase}
}

// VerifyAccount returns a handler deciding accounts of one kind, so that
// /admin/students/:id/verify cannot touch a business account.
func (h *AdminHandler) VerifyAccount(kind entity.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerOrAbort(c)
		if !ok {
			return
		}
		var req dto.VerifyAccountRequest
		if err := BindAndValidate(c, &req); err != nil {
			return
		}
		user, err := h.adminUsecase.DecideVerification(c.Request.Context(), caller, kind, c.Param("id"),
			entity.VerificationStatus(req.Decision), req.Reason)
		if err != nil {
			HandleError(c, err)
			return
		}
		SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
	}
}

func (h *AdminHandler) ListPending(kind entity.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.PaginationQuery
		if err := BindQuery(c, &q); err != nil {
			return
		}
		pagination := q.ToPagination()
		users, total, err := h.adminUsecase.ListPendingVerifications(c.Request.Context(), kind, pagination)
		if err != nil {
			HandleError(c, err)
			return
		}
		SuccessHandler(c, http.StatusOK, dto.NewListResponse(dto.ToUserResponses(users), pagination, total))
	}
}

func (h *AdminHandler) ModerateReview(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.ModerateReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	action := entity.ModerationAction(req.Action)
	review, err := h.reviewUsecase.ModerateReview(c.Request.Context(), caller, c.Param("id"), action, req.Note)
	if err != nil {
		HandleError(c, err)
		return
	}
	if action == entity.ModerationDelete {
		MessageHandler(c, http.StatusOK, "Review deleted successfully")
		return
	}
	SuccessHandler(c, http.StatusOK, review)
}

func (h *AdminHandler) ListFlaggedReviews(c *gin.Context) {
	var q dto.PaginationQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	pagination := q.ToPagination()
	reviews, total, err := h.reviewUsecase.GetFlaggedReviews(c.Request.Context(), pagination)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.NewListResponse(reviews, pagination, total))
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUsecase.GetDashboardStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, stats)
}

func (h *AdminHandler) SetUserRole(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.SetRoleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.adminUsecase.SetUserRole(c.Request.Context(), caller, c.Param("id"), entity.UserRole(req.Role))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}
