package account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/api"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary      Register new account
// @Description  Creates an account and returns access & refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      201      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	acct, accessToken, refreshToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already registered"})
		case errors.Is(err, ErrDisabilityCauseRequired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Disability cause is required when disability is set"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create account"})
		}
		return
	}

	metrics.RecordRegistration(acct.Role)

	c.JSON(http.StatusCreated, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *acct,
	})
}

// Login godoc
// @Summary      Login
// @Description  Authenticates by email and password and marks the account online.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	acct, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *acct,
	})
}

// Logout godoc
// @Summary      Logout
// @Description  Marks the authenticated account offline.
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Failure      401  {object}  api.ErrorResponse
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out"})
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      map[string]string  true  "Refresh token payload"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "refresh_token is required"})
		return
	}

	newAccessToken, acct, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Account not found"})
			return
		}
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": newAccessToken,
		"user":         acct,
	})
}

// GetMe godoc
// @Summary      Get current account
// @Tags         accounts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Account
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	acct, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Account not found"})
		return
	}

	c.JSON(http.StatusOK, acct)
}

// UpdateMe godoc
// @Summary      Update current account profile
// @Tags         accounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200      {object}  Account
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	acct, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDisabilityCauseRequired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Disability cause is required when disability is set"})
		case errors.Is(err, ErrAccountNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Account not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, acct)
}

// GetAccount godoc
// @Summary      Get an account by ID
// @Tags         accounts
// @Security     BearerAuth
// @Produce      json
// @Param        accountID  path      int  true  "Account ID"
// @Success      200        {object}  Account
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /accounts/{accountID} [get]
func (h *Handler) GetAccount(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("accountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid account ID"})
		return
	}

	acct, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Account not found"})
		return
	}

	c.JSON(http.StatusOK, acct)
}

// ChangeRole godoc
// @Summary      Change an account role
// @Description  Admin-only. Self role changes are rejected.
// @Tags         admin,accounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        accountID  path      int                true  "Account ID"
// @Param        request    body      ChangeRoleRequest  true  "New role"
// @Success      200        {object}  Account
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /admin/accounts/{accountID}/role [patch]
func (h *Handler) ChangeRole(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	targetID, err := strconv.Atoi(c.Param("accountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid account ID"})
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	acct, err := h.service.ChangeRole(c.Request.Context(), caller, targetID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Insufficient permissions"})
		case errors.Is(err, ErrSelfRoleChange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cannot change your own role"})
		case errors.Is(err, ErrAccountNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Account not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to change role"})
		}
		return
	}

	c.JSON(http.StatusOK, acct)
}

// DeleteAccount godoc
// @Summary      Delete an account
// @Description  Owners may delete their own account; admins may delete any.
// @Tags         accounts
// @Security     BearerAuth
// @Produce      json
// @Param        accountID  path      int  true  "Account ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /accounts/{accountID} [delete]
func (h *Handler) DeleteAccount(c *gin.Context) {
	caller, ok := auth.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	targetID, err := strconv.Atoi(c.Param("accountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid account ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, targetID); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not authorized to delete this account"})
		case errors.Is(err, ErrAccountNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Account not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete account"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Account deleted"})
}

// ProfileImageUploadURL godoc
// @Summary      Get a presigned profile image upload URL
// @Tags         accounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UploadURLRequest  true  "Content type"
// @Success      200      {object}  UploadURLResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /me/profile-image-upload-url [post]
func (h *Handler) ProfileImageUploadURL(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.ProfileImageUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ProfileImageDownloadURL godoc
// @Summary      Get a presigned profile image download URL
// @Tags         accounts
// @Security     BearerAuth
// @Produce      json
// @Param        accountID  path      int  true  "Account ID"
// @Success      200        {object}  map[string]string
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /accounts/{accountID}/profile-image [get]
func (h *Handler) ProfileImageDownloadURL(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("accountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid account ID"})
		return
	}

	url, err := h.service.ProfileImageDownloadURL(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Profile image not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}
