package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type ReviewHandler struct {
	reviewUsecase usecasecontract.IReviewUseCase
}

func NewReviewHandler(reviewUsecase usecasecontract.IReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	review, err := h.reviewUsecase.CreateReview(c.Request.Context(), caller, req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, review)
}

func (h *ReviewHandler) FlagReview(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.FlagReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.reviewUsecase.FlagReview(c.Request.Context(), caller, c.Param("id"), req.Reason); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Review flagged for moderation")
}

func (h *ReviewHandler) ListMyReviews(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var q dto.PaginationQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	pagination := q.ToPagination()
	reviews, total, err := h.reviewUsecase.GetUserReviews(c.Request.Context(), caller.UserID, pagination)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.NewListResponse(reviews, pagination, total))
}
