package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/api/middleware"
	"github.com/demo-018/indiveg-hub/api/responses"
	"github.com/demo-018/indiveg-hub/api/validators"
	"github.com/demo-018/indiveg-hub/internal/users"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type ProfileController struct {
	service *users.Service
}

func NewProfileController(service *users.Service) *ProfileController {
	return &ProfileController{service: service}
}

func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	user, err := c.service.Profile(r.Context(), identity.UserID)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, user)
}

func (c *ProfileController) ListAddresses(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	addresses, err := c.service.Addresses(r.Context(), identity.UserID)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, addresses)
}

func (c *ProfileController) AddAddress(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input users.AddAddressInput
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	address, err := c.service.AddAddress(r.Context(), identity.UserID, input)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusCreated, address)
}

func (c *ProfileController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	addressID, err := uuid.Parse(chi.URLParam(r, "addressId"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, "invalid address id"))
		return
	}

	var input users.AddAddressInput
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	address, err := c.service.UpdateAddress(r.Context(), identity.UserID, addressID, input)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, address)
}

func (c *ProfileController) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	addressID, err := uuid.Parse(chi.URLParam(r, "addressId"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, "invalid address id"))
		return
	}

	if err := c.service.RemoveAddress(r.Context(), identity.UserID, addressID); err != nil {
		responses.Error(w, err)
		return
	}
	responses.NoContent(w)
}

func (c *ProfileController) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	addressID, err := uuid.Parse(chi.URLParam(r, "addressId"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, "invalid address id"))
		return
	}

	if err := c.service.SetDefaultAddress(r.Context(), identity.UserID, addressID); err != nil {
		responses.Error(w, err)
		return
	}
	responses.NoContent(w)
}
