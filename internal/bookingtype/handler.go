package bookingtype

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/api"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListActive godoc
// @Summary      List active booking types
// @Tags         booking-types
// @Security     BearerAuth
// @Produce      json
// @Param        coachId  query     int  false  "Filter by coach"
// @Success      200      {array}   BookingType
// @Router       /booking-types [get]
func (h *Handler) ListActive(c *gin.Context) {
	if v := c.Query("coachId"); v != "" {
		coachID, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coachId"})
			return
		}

		types, err := h.service.ListByCoach(c.Request.Context(), coachID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch booking types"})
			return
		}
		c.JSON(http.StatusOK, types)
		return
	}

	types, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch booking types"})
		return
	}

	c.JSON(http.StatusOK, types)
}

// ListMine godoc
// @Summary      List the calling coach's booking types
// @Tags         booking-types
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  BookingType
// @Router       /coach/booking-types [get]
func (h *Handler) ListMine(c *gin.Context) {
	coachID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	types, err := h.service.ListByCoach(c.Request.Context(), coachID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch booking types"})
		return
	}

	c.JSON(http.StatusOK, types)
}

// Get godoc
// @Summary      Get a booking type
// @Tags         booking-types
// @Security     BearerAuth
// @Produce      json
// @Param        typeID  path      int  true  "Booking type ID"
// @Success      200     {object}  BookingType
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /booking-types/{typeID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("typeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking type ID"})
		return
	}

	bt, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking type not found"})
		return
	}

	c.JSON(http.StatusOK, bt)
}

// Create godoc
// @Summary      Create a booking type
// @Description  Coach-only: adds a priced offering.
// @Tags         booking-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingTypeRequest  true  "Booking type payload"
// @Success      201      {object}  BookingType
// @Failure      400      {object}  api.ErrorResponse
// @Router       /booking-types [post]
func (h *Handler) Create(c *gin.Context) {
	coachID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateBookingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	bt, err := h.service.Create(c.Request.Context(), coachID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking type"})
		return
	}

	c.JSON(http.StatusCreated, bt)
}

// Update godoc
// @Summary      Update a booking type
// @Description  Owning coach or admin only.
// @Tags         booking-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        typeID   path      int                       true  "Booking type ID"
// @Param        request  body      UpdateBookingTypeRequest  true  "Fields to update"
// @Success      200      {object}  BookingType
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /booking-types/{typeID} [patch]
func (h *Handler) Update(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("typeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking type ID"})
		return
	}

	var req UpdateBookingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	bt, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingTypeNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking type not found"})
		case errors.Is(err, ErrNotBookingTypeOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to update this booking type"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update booking type"})
		}
		return
	}

	c.JSON(http.StatusOK, bt)
}

// Deactivate godoc
// @Summary      Deactivate a booking type
// @Description  Soft delete: sets is_active to false. Owning coach or admin only.
// @Tags         booking-types
// @Security     BearerAuth
// @Produce      json
// @Param        typeID  path      int  true  "Booking type ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      403     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /booking-types/{typeID} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("typeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking type ID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), caller, id); err != nil {
		switch {
		case errors.Is(err, ErrBookingTypeNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking type not found"})
		case errors.Is(err, ErrNotBookingTypeOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to delete this booking type"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to deactivate booking type"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking type deactivated"})
}
