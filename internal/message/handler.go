package message

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/api"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// StartConversation godoc
// @Summary      Open a conversation
// @Description  Opens (or returns) the chat thread with the other
// participant of a booked session.
// @Tags         messages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      StartConversationRequest  true  "Session reference"
// @Success      200      {object}  Conversation
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /conversations [post]
func (h *Handler) StartConversation(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	conv, err := h.service.StartConversation(c.Request.Context(), caller, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not a participant of this session"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to open conversation"})
		}
		return
	}

	c.JSON(http.StatusOK, conv)
}

// ListConversations godoc
// @Summary      List conversations
// @Description  All conversations the caller participates in, with the
// latest message and unread count.
// @Tags         messages
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  ConversationSummary
// @Router       /conversations [get]
func (h *Handler) ListConversations(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	conversations, err := h.service.ListConversations(c.Request.Context(), caller)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

// ListMessages godoc
// @Summary      List messages
// @Description  A page of messages, newest first. Reading marks the other
// participant's messages as read.
// @Tags         messages
// @Security     BearerAuth
// @Produce      json
// @Param        conversationID  path      int  true   "Conversation ID"
// @Param        limit           query     int  false  "Page size (default 50)"
// @Param        offset          query     int  false  "Page offset"
// @Success      200             {object}  map[string]interface{}
// @Failure      400             {object}  api.ErrorResponse
// @Failure      403             {object}  api.ErrorResponse
// @Failure      404             {object}  api.ErrorResponse
// @Router       /conversations/{conversationID}/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("conversationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid conversation ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, total, err := h.service.ListMessages(c.Request.Context(), caller, id, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrConversationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Conversation not found"})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not a participant of this conversation"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch messages"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    total,
	})
}

// Send godoc
// @Summary      Send a message
// @Tags         messages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        conversationID  path      int                 true  "Conversation ID"
// @Param        request         body      SendMessageRequest  true  "Message payload"
// @Success      201             {object}  Message
// @Failure      400             {object}  api.ErrorResponse
// @Failure      403             {object}  api.ErrorResponse
// @Failure      404             {object}  api.ErrorResponse
// @Router       /conversations/{conversationID}/messages [post]
func (h *Handler) Send(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("conversationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid conversation ID"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	msg, err := h.service.Send(c.Request.Context(), caller, id, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrConversationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Conversation not found"})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not a participant of this conversation"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, msg)
}
