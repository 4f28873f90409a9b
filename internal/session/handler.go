package session

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// Create godoc
// @Summary      Book a session
// @Description  Books an available time slot against an active booking type.
// The slot is claimed atomically; a concurrent booking of the same slot
// fails with 409.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSessionRequest  true  "Booking payload"
// @Success      201      {object}  Session
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sess, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, bookingtype.ErrBookingTypeNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking type not found"})
		case errors.Is(err, ErrBookingTypeInactive):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking type is not active"})
		case errors.Is(err, ErrSlotNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Time slot not found"})
		case errors.Is(err, ErrSlotTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Time slot is no longer available"})
		case errors.Is(err, ErrSlotInPast):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cannot book a slot in the past"})
		case errors.Is(err, ErrCoachMismatch):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking type and time slot belong to different coaches"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to book session"})
		}
		return
	}

	c.JSON(http.StatusCreated, sess)
}

// List godoc
// @Summary      List sessions
// @Description  Users see their own sessions, coaches their coaching
// sessions, admins everything.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        status     query     string  false  "Status filter"
// @Param        startDate  query     string  false  "RFC3339 lower bound"
// @Param        endDate    query     string  false  "RFC3339 upper bound"
// @Success      200        {array}   Session
// @Failure      400        {object}  api.ErrorResponse
// @Router       /sessions [get]
func (h *Handler) List(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var f Filters
	if v := c.Query("status"); v != "" {
		f.Status = &v
	}
	if v := c.Query("startDate"); v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid startDate"})
			return
		}
		f.Start = &start
	}
	if v := c.Query("endDate"); v != "" {
		end, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid endDate"})
			return
		}
		f.End = &end
	}

	sessions, err := h.service.List(c.Request.Context(), caller, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// Get godoc
// @Summary      Get a session
// @Description  Participants and admins only.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {object}  Session
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /sessions/{sessionID} [get]
func (h *Handler) Get(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	sess, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to view this session"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch session"})
		}
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Update godoc
// @Summary      Update a session
// @Description  Participants may edit notes; status and payment flag are
// coach/admin only. Status changes follow the forward-only lifecycle.
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                   true  "Session ID"
// @Param        request    body      UpdateSessionRequest  true  "Fields to update"
// @Success      200        {object}  Session
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /sessions/{sessionID} [patch]
func (h *Handler) Update(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sess, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to update this session"})
		case errors.Is(err, ErrStatusChangeByUser):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Only the coach may change session status"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status transition"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update session"})
		}
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Cancel godoc
// @Summary      Cancel a session
// @Description  Participants and admins only. Cancelling twice fails with
// 400; the slot is released on success.
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {object}  Session
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /sessions/{sessionID}/cancel [put]
func (h *Handler) Cancel(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	sess, err := h.service.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to cancel this session"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Session already cancelled"})
		case errors.Is(err, ErrSessionCompleted):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cannot cancel a completed session"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel session"})
		}
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Stats godoc
// @Summary      Session analytics
// @Description  Admin-only: booked/cancelled counts by day and by coach
// over a date range (defaults to the last 30 days).
// @Tags         admin,sessions
// @Security     BearerAuth
// @Produce      json
// @Param        startDate  query     string  false  "RFC3339 lower bound"
// @Param        endDate    query     string  false  "RFC3339 upper bound"
// @Success      200        {object}  map[string]interface{}
// @Failure      400        {object}  api.ErrorResponse
// @Router       /admin/analytics/sessions [get]
func (h *Handler) Stats(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("startDate"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid startDate"})
			return
		}
		from = parsed
	}
	if v := c.Query("endDate"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid endDate"})
			return
		}
		to = parsed
	}

	byDay, err := h.service.StatsByDay(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch analytics"})
		return
	}

	byCoach, err := h.service.StatsByCoach(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"by_day":   byDay,
		"by_coach": byCoach,
	})
}
