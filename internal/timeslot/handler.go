package timeslot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

func parseFilters(c *gin.Context) (Filters, error) {
	var f Filters

	if v := c.Query("coachId"); v != "" {
		coachID, err := strconv.Atoi(v)
		if err != nil {
			return f, errors.New("invalid coachId")
		}
		f.CoachID = &coachID
	}
	if v := c.Query("startDate"); v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid startDate")
		}
		f.Start = &start
	}
	if v := c.Query("endDate"); v != "" {
		end, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid endDate")
		}
		f.End = &end
	}

	return f, nil
}

// ListAvailable godoc
// @Summary      List available time slots
// @Description  Defaults to future slots that are still bookable.
// @Tags         time-slots
// @Security     BearerAuth
// @Produce      json
// @Param        coachId    query     int     false  "Coach ID"
// @Param        startDate  query     string  false  "RFC3339 lower bound"
// @Param        endDate    query     string  false  "RFC3339 upper bound"
// @Success      200        {array}   TimeSlot
// @Failure      400        {object}  api.ErrorResponse
// @Router       /time-slots [get]
func (h *Handler) ListAvailable(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slots, err := h.service.ListAvailable(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch time slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// ListMine godoc
// @Summary      List the calling coach's time slots
// @Tags         time-slots
// @Security     BearerAuth
// @Produce      json
// @Param        startDate  query     string  false  "RFC3339 lower bound"
// @Param        endDate    query     string  false  "RFC3339 upper bound"
// @Success      200        {array}   TimeSlot
// @Failure      400        {object}  api.ErrorResponse
// @Router       /coach/time-slots [get]
func (h *Handler) ListMine(c *gin.Context) {
	coachID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	f, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slots, err := h.service.ListByCoach(c.Request.Context(), coachID, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch time slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// Get godoc
// @Summary      Get a time slot
// @Tags         time-slots
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Time slot ID"
// @Success      200     {object}  TimeSlot
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /time-slots/{slotID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	slot, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Time slot not found"})
		return
	}

	c.JSON(http.StatusOK, slot)
}

// Create godoc
// @Summary      Create a time slot
// @Description  Coach-only: adds a bookable slot to the caller's calendar.
// @Tags         time-slots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTimeSlotRequest  true  "Slot payload"
// @Success      201      {object}  TimeSlot
// @Failure      400      {object}  api.ErrorResponse
// @Router       /time-slots [post]
func (h *Handler) Create(c *gin.Context) {
	coachID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slot, err := h.service.Create(c.Request.Context(), coachID, req)
	if err != nil {
		if errors.Is(err, ErrSlotInvalid) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time slot data"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create time slot"})
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// Update godoc
// @Summary      Update a time slot
// @Description  Owning coach or admin only.
// @Tags         time-slots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slotID   path      int                    true  "Time slot ID"
// @Param        request  body      UpdateTimeSlotRequest  true  "Fields to update"
// @Success      200      {object}  TimeSlot
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /time-slots/{slotID} [patch]
func (h *Handler) Update(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	var req UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slot, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Time slot not found"})
		case errors.Is(err, ErrNotSlotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to update this time slot"})
		case errors.Is(err, ErrSlotInvalid):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time slot data"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update time slot"})
		}
		return
	}

	c.JSON(http.StatusOK, slot)
}

// Delete godoc
// @Summary      Delete a time slot
// @Description  Owning coach or admin only.
// @Tags         time-slots
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Time slot ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      403     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /time-slots/{slotID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Time slot not found"})
		case errors.Is(err, ErrNotSlotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to delete this time slot"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete time slot"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Time slot deleted"})
}
