package discount

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/api"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/bookingtype"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListMine godoc
// @Summary      List the calling coach's discount codes
// @Tags         discounts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Discount
// @Router       /coach/discounts [get]
func (h *Handler) ListMine(c *gin.Context) {
	coachID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	discounts, err := h.service.ListByCoach(c.Request.Context(), coachID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch discounts"})
		return
	}

	c.JSON(http.StatusOK, discounts)
}

// Create godoc
// @Summary      Create a discount code
// @Tags         discounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateDiscountRequest  true  "Discount payload"
// @Success      201      {object}  Discount
// @Failure      400      {object}  api.ErrorResponse
// @Router       /coach/discounts [post]
func (h *Handler) Create(c *gin.Context) {
	coachID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	d, err := h.service.Create(c.Request.Context(), coachID, req)
	if err != nil {
		if errors.Is(err, ErrDiscountInvalid) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid discount data"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create discount"})
		return
	}

	c.JSON(http.StatusCreated, d)
}

// Update godoc
// @Summary      Update a discount code
// @Description  Owning coach or admin only.
// @Tags         discounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        discountID  path      int                    true  "Discount ID"
// @Param        request     body      UpdateDiscountRequest  true  "Fields to update"
// @Success      200         {object}  Discount
// @Failure      400         {object}  api.ErrorResponse
// @Failure      403         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /coach/discounts/{discountID} [patch]
func (h *Handler) Update(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("discountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid discount ID"})
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	d, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDiscountNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Discount not found"})
		case errors.Is(err, ErrNotDiscountOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to update this discount"})
		case errors.Is(err, ErrDiscountInvalid):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid discount data"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update discount"})
		}
		return
	}

	c.JSON(http.StatusOK, d)
}

// Deactivate godoc
// @Summary      Deactivate a discount code
// @Tags         discounts
// @Security     BearerAuth
// @Produce      json
// @Param        discountID  path      int  true  "Discount ID"
// @Success      200         {object}  api.MessageResponse
// @Failure      400         {object}  api.ErrorResponse
// @Failure      403         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /coach/discounts/{discountID} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("discountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid discount ID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), caller, id); err != nil {
		switch {
		case errors.Is(err, ErrDiscountNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Discount not found"})
		case errors.Is(err, ErrNotDiscountOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to delete this discount"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to deactivate discount"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Discount deactivated"})
}

// Preview godoc
// @Summary      Preview a discount against a booking type
// @Description  Returns the final price when the code is usable. Booking
// itself stores codes verbatim; this is the only validation surface.
// @Tags         discounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PreviewRequest  true  "Code and booking type"
// @Success      200      {object}  PreviewResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /discounts/preview [post]
func (h *Handler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, bookingtype.ErrBookingTypeNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to preview discount"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
