package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type PlaceHandler struct {
	placeUsecase  usecasecontract.IPlaceUseCase
	reviewUsecase usecasecontract.IReviewUseCase
}

func NewPlaceHandler(placeUsecase usecasecontract.IPlaceUseCase, reviewUsecase usecasecontract.IReviewUseCase) *PlaceHandler {
	return &PlaceHandler{placeUsecase: placeUsecase, reviewUsecase: reviewUsecase}
}

func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreatePlaceRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	place, err := h.placeUsecase.CreatePlace(c.Request.Context(), caller, req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, place)
}

func (h *PlaceHandler) GetPlace(c *gin.Context) {
	place, err := h.placeUsecase.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, place)
}

// ListPlaces supports ?category=&q=&lng=&lat=&radius=&page=&page_size=.
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	var q dto.ListPlacesQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	opts, err := q.ToFilter()
	if err != nil {
		HandleError(c, err)
		return
	}
	places, total, err := h.placeUsecase.ListPlaces(c.Request.Context(), opts)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.NewListResponse(places, opts.Pagination, total))
}

func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdatePlaceRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	place, err := h.placeUsecase.UpdatePlace(c.Request.Context(), caller, c.Param("id"), req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, place)
}

func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.placeUsecase.DeletePlace(c.Request.Context(), caller, c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Place deleted successfully")
}

// ListPlaceReviews returns the visible reviews of a place, newest first.
func (h *PlaceHandler) ListPlaceReviews(c *gin.Context) {
	var q dto.PaginationQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	pagination := q.ToPagination()
	reviews, total, err := h.reviewUsecase.GetPlaceReviews(c.Request.Context(), c.Param("id"), pagination)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.NewListResponse(reviews, pagination, total))
}
