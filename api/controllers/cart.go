package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/demo-018/indiveg-hub/api/middleware"
	"github.com/demo-018/indiveg-hub/api/responses"
	"github.com/demo-018/indiveg-hub/api/validators"
	"github.com/demo-018/indiveg-hub/internal/cart"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type CartController struct {
	service *cart.Service
}

func NewCartController(service *cart.Service) *CartController {
	return &CartController{service: service}
}

type addToCartRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

type updateQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	userCart, err := c.service.Get(r.Context(), identity.UserID.String())
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, userCart)
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input addToCartRequest
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	userCart, err := c.service.Add(r.Context(), identity.UserID.String(), input.ProductID, input.Quantity)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, userCart)
}

func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input updateQuantityRequest
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	userCart, err := c.service.UpdateQuantity(r.Context(), identity.UserID.String(),
		chi.URLParam(r, "productId"), input.Quantity)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, userCart)
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	userCart, err := c.service.Remove(r.Context(), identity.UserID.String(), chi.URLParam(r, "productId"))
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, userCart)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := c.service.Clear(r.Context(), identity.UserID.String()); err != nil {
		responses.Error(w, err)
		return
	}
	responses.NoContent(w)
}
