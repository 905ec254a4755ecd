package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/api/middleware"
	"github.com/demo-018/indiveg-hub/api/responses"
	"github.com/demo-018/indiveg-hub/internal/notifications"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type NotificationsController struct {
	service *notifications.Service
}

func NewNotificationsController(service *notifications.Service) *NotificationsController {
	return &NotificationsController{service: service}
}

func (c *NotificationsController) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			responses.Error(w, apperrors.New(apperrors.CodeValidation, "invalid limit"))
			return
		}
		limit = parsed
	}

	items, err := c.service.ListByUser(r.Context(), identity.UserID, unreadOnly, limit)
	if err != nil {
		responses.Error(w, err)
		return
	}

	unread, err := c.service.CountUnread(r.Context(), identity.UserID)
	if err != nil {
		responses.Error(w, err)
		return
	}

	responses.JSON(w, http.StatusOK, map[string]any{
		"notifications": items,
		"unreadCount":   unread,
	})
}

func (c *NotificationsController) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	notificationID, err := uuid.Parse(chi.URLParam(r, "notificationId"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, "invalid notification id"))
		return
	}

	if err := c.service.MarkRead(r.Context(), identity.UserID, notificationID); err != nil {
		responses.Error(w, err)
		return
	}
	responses.NoContent(w)
}

func (c *NotificationsController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := c.service.MarkAllRead(r.Context(), identity.UserID); err != nil {
		responses.Error(w, err)
		return
	}
	responses.NoContent(w)
}
