package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type VehicleHandler struct {
	vehicleUsecase usecasecontract.IVehicleUseCase
}

func NewVehicleHandler(vehicleUsecase usecasecontract.IVehicleUseCase) *VehicleHandler {
	return &VehicleHandler{vehicleUsecase: vehicleUsecase}
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateVehicleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	vehicle, err := h.vehicleUsecase.CreateVehicle(c.Request.Context(), caller, req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleUsecase.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, vehicle)
}

// ListVehicles supports ?type=&available=&lng=&lat=&radius=&page=&page_size=.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var q dto.ListVehiclesQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	opts, err := q.ToFilter()
	if err != nil {
		HandleError(c, err)
		return
	}
	vehicles, total, err := h.vehicleUsecase.ListVehicles(c.Request.Context(), opts)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.NewListResponse(vehicles, opts.Pagination, total))
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateVehicleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	vehicle, err := h.vehicleUsecase.UpdateVehicle(c.Request.Context(), caller, c.Param("id"), req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, vehicle)
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.vehicleUsecase.DeleteVehicle(c.Request.Context(), caller, c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Vehicle deleted successfully")
}
