package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/api/middleware"
	"github.com/demo-018/indiveg-hub/api/responses"
	"github.com/demo-018/indiveg-hub/api/validators"
	"github.com/demo-018/indiveg-hub/internal/orders"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type OrdersController struct {
	service *orders.Service
}

func NewOrdersController(service *orders.Service) *OrdersController {
	return &OrdersController{service: service}
}

func (c *OrdersController) DeliveryOptions(w http.ResponseWriter, r *http.Request) {
	responses.JSON(w, http.StatusOK, c.service.DeliveryOptions())
}

func (c *OrdersController) Checkout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input orders.CheckoutInput
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	order, err := c.service.Checkout(r.Context(), identity.UserID, input)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusCreated, order)
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	result, err := c.service.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, result)
}

func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, "invalid order id"))
		return
	}

	order, err := c.service.Get(r.Context(), identity.UserID, identity.Role, orderID)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, order)
}

func (c *OrdersController) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, "invalid order id"))
		return
	}

	order, err := c.service.Cancel(r.Context(), identity.UserID, orderID)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, order)
}

// UpdateStatus is the admin fulfilment endpoint.
func (c *OrdersController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, "invalid order id"))
		return
	}

	var input orders.UpdateStatusInput
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	order, err := c.service.UpdateStatus(r.Context(), orderID, input)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, order)
}
