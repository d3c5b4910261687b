package realty

import (
	"errors"
	"fmt"
	"net/http"

	"snapapp/internal/domain"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	log     logging.Logger
}

func NewHandler(service *Service, log logging.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// AddClient godoc
// @Summary		Add a client
// @Tags		Realty
// @Security	BearerAuth
// @Accept		json
// @Param		request	body	ClientRequest	true	"client profile"
// @Success		201	{string}	string	"Client added."
// @Failure		404	{string}	string	"Missing client request content."
// @Failure		409	{string}	string	"User {email} already exists."
// @Router		/clients [post]
func (h *Handler) AddClient(c *gin.Context, id domain.Identity) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusNotFound, "Missing client request content.")
		return
	}

	if _, err := h.service.AddClient(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			response.Error(c, http.StatusConflict, fmt.Sprintf("User %s already exists.", domain.NormalizeEmail(req.Email)))
		case errors.Is(err, ErrMissingContent):
			response.Error(c, http.StatusNotFound, "Missing client request content.")
		case errors.Is(err, ErrInvalidContent):
			response.Error(c, http.StatusBadRequest, "Invalid client request content.")
		default:
			h.log.Error(c.Request.Context(), "add client failed", "user_id", id.UserID, "error", err)
			response.InternalError(c)
		}
		return
	}

	response.Message(c, http.StatusCreated, "Client added.")
}

// AddProperty godoc
// @Summary		Add a property for an existing client
// @Tags		Realty
// @Security	BearerAuth
// @Accept		json
// @Param		request	body	PropertyRequest	true	"property"
// @Success		201	{string}	string	"Property added."
// @Failure		404	{string}	string	"Client doesn't exist."
// @Failure		409	{string}	string	"Claim user is not the realtor."
// @Router		/properties [post]
func (h *Handler) AddProperty(c *gin.Context, id domain.Identity) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusNotFound, "Missing transaction request content.")
		return
	}

	req.normalize()
	if _, err := h.service.AddProperty(c.Request.Context(), id, req); err != nil {
		h.writePropertyError(c, id, err, req.address(), "")
		return
	}

	response.Message(c, http.StatusCreated, "Property added.")
}

// AddTransaction godoc
// @Summary		Add a client together with their property
// @Tags		Realty
// @Security	BearerAuth
// @Accept		json
// @Param		request	body	TransactionRequest	true	"client and property"
// @Success		201	{string}	string	"Transaction added."
// @Failure		404	{string}	string	"Missing transaction request content."
// @Failure		409	{string}	string	"Client {email} already exists."
// @Router		/transactions [post]
func (h *Handler) AddTransaction(c *gin.Context, id domain.Identity) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusNotFound, "Missing transaction request content.")
		return
	}

	req.Client.normalize()
	req.Property.normalize()
	if _, err := h.service.AddTransaction(c.Request.Context(), id, req); err != nil {
		h.writePropertyError(c, id, err, req.Property.address(), req.Client.Email)
		return
	}

	response.Message(c, http.StatusCreated, "Transaction added.")
}

func (h *Handler) writePropertyError(c *gin.Context, id domain.Identity, err error, addr domain.Address, clientEmail string) {
	switch {
	case errors.Is(err, ErrClientNotFound):
		response.Error(c, http.StatusNotFound, "Client doesn't exist.")
	case errors.Is(err, ErrUserExists):
		response.Error(c, http.StatusConflict, fmt.Sprintf("Client %s already exists.", clientEmail))
	case errors.Is(err, ErrPropertyExists):
		response.Error(c, http.StatusConflict, fmt.Sprintf("Property at %s already exists.", addr))
	case errors.Is(err, ErrMissingContent):
		response.Error(c, http.StatusNotFound, "Missing transaction request content.")
	case errors.Is(err, ErrInvalidContent):
		response.Error(c, http.StatusBadRequest, "Invalid transaction request content.")
	case errors.Is(err, ErrNotClaimRealtor):
		response.Error(c, http.StatusConflict, "Claim user is not the realtor.")
	default:
		h.log.Error(c.Request.Context(), "property write failed", "user_id", id.UserID, "error", err)
		response.InternalError(c)
	}
}

// ListProperties godoc
// @Summary		List the caller's properties
// @Tags		Realty
// @Security	BearerAuth
// @Produce		json
// @Success		200	{array}	domain.Property
// @Router		/properties [get]
func (h *Handler) ListProperties(c *gin.Context, id domain.Identity) {
	props, err := h.service.ListProperties(c.Request.Context(), id)
	if err != nil {
		h.log.Error(c.Request.Context(), "list properties failed", "user_id", id.UserID, "error", err)
		response.InternalError(c)
		return
	}
	response.Success(c, http.StatusOK, props)
}

// WhoAmI echoes the identity the gate resolved for the request.
func (h *Handler) WhoAmI(c *gin.Context, id domain.Identity) {
	response.Success(c, http.StatusOK, id)
}
