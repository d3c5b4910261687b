package auth

import (
	"errors"
	"fmt"
	"net/http"

	"snapapp/internal/domain"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	log     logging.Logger
}

func NewHandler(service *Service, log logging.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Login issues a token pair for valid credentials.
// @Summary		Log in
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		request	body	LoginRequest	true	"username (email) and password"
// @Success		200	{object}	LoginResult
// @Failure		401	{string}	string	"Invalid username or password."
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		response.Error(c, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		h.log.Error(c.Request.Context(), "login failed", "error", err)
		response.InternalError(c)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// SignUp creates a user and their first session.
// @Summary		Sign up
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		request	body	SignUpRequest	true	"profile and password"
// @Success		200	{object}	SignUpResult
// @Failure		400	{string}	string	"Invalid signup request content."
// @Failure		404	{string}	string	"Missing signup request content."
// @Failure		409	{string}	string	"User {email} already exists."
// @Router		/auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusNotFound, "Missing signup request content.")
		return
	}

	res, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingContent):
			response.Error(c, http.StatusNotFound, "Missing signup request content.")
		case errors.Is(err, ErrInvalidContent):
			response.Error(c, http.StatusBadRequest, "Invalid signup request content.")
		case errors.Is(err, ErrDuplicateUser):
			response.Error(c, http.StatusConflict, fmt.Sprintf("User %s already exists.", domain.NormalizeEmail(req.Email)))
		default:
			h.log.Error(c.Request.Context(), "signup failed", "error", err)
			response.InternalError(c)
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

// RenewToken trades the current refresh token for a new pair.
// @Summary		Renew tokens
// @Tags		Auth
// @Produce		json
// @Param		Authorization	header	string	true	"Bearer <refreshToken>"
// @Param		X-UserId		header	string	true	"user id"
// @Success		200	{object}	TokenPair
// @Failure		401	{string}	string	"Authentication failed."
// @Failure		404	{string}	string	"Missing user id."
// @Router		/auth/renew [post]
func (h *Handler) RenewToken(c *gin.Context) {
	refresh, err := BearerToken(c.GetHeader(HeaderAuthorization))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Authorization header is required.")
		return
	}
	userID, err := ParseUserID(c.GetHeader(HeaderUserID))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Missing user id.")
		return
	}

	pair, err := h.service.RenewToken(c.Request.Context(), refresh, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			response.Error(c, http.StatusUnauthorized, "Authentication failed.")
		case errors.Is(err, ErrMalformedToken), errors.Is(err, ErrTokenEpochMismatch):
			h.log.Warn(c.Request.Context(), "refresh token rejected", "user_id", userID, "reason", err.Error())
			response.Error(c, http.StatusUnauthorized, "Invalid token.")
		case errors.Is(err, ErrSessionExpired):
			response.Error(c, http.StatusUnauthorized, "Authentication expired.")
		default:
			h.log.Error(c.Request.Context(), "renew failed", "user_id", userID, "error", err)
			response.InternalError(c)
		}
		return
	}

	response.Success(c, http.StatusOK, pair)
}

// Logout ends the caller's session.
// @Summary		Log out
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{string}	string	"Logged out."
// @Router		/auth/logout [post]
func (h *Handler) Logout(c *gin.Context, id domain.Identity) {
	if err := h.service.Logout(c.Request.Context(), id.UserID); err != nil {
		h.log.Error(c.Request.Context(), "logout failed", "user_id", id.UserID, "error", err)
		response.InternalError(c)
		return
	}
	response.Message(c, http.StatusOK, "Logged out.")
}

// PurgeStaleLogins is the internal maintenance endpoint.
func (h *Handler) PurgeStaleLogins(c *gin.Context) {
	n, err := h.service.PurgeStaleLogins(c.Request.Context())
	if err != nil {
		h.log.Error(c.Request.Context(), "purge failed", "error", err)
		response.InternalError(c)
		return
	}
	response.Success(c, http.StatusOK, PurgeResult{Deleted: n})
}
