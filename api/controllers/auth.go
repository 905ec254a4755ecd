package controllers

import (
	"net/http"

	"github.com/demo-018/indiveg-hub/api/middleware"
	"github.com/demo-018/indiveg-hub/api/responses"
	"github.com/demo-018/indiveg-hub/api/validators"
	"github.com/demo-018/indiveg-hub/internal/auth"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type AuthController struct {
	service *auth.Service
}

func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

type otpRequest struct {
	Mobile string `json:"mobile" validate:"required,len=10,numeric"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input auth.LoginInput
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	result, err := c.service.Login(r.Context(), input)
	if err != nil {
		responses.Error(w, err)
		return
	}

	responses.JSON(w, http.StatusOK, map[string]any{
		"token":        result.Token,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh trades a refresh token for a fresh pair. It is reachable
// without a bearer token since the access token may already be stale.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var input refreshRequest
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	result, err := c.service.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		responses.Error(w, err)
		return
	}

	responses.JSON(w, http.StatusOK, map[string]any{
		"token":        result.Token,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

func (c *AuthController) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var input otpRequest
	if err := validators.DecodeJSONBody(w, r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	if err := c.service.RequestOTP(r.Context(), input.Mobile); err != nil {
		responses.Error(w, err)
		return
	}
	// Same answer whether or not the mobile is registered.
	responses.JSON(w, http.StatusOK, map[string]string{"message": "otp sent if the mobile is registered"})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	user, err := c.service.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, user)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := c.service.Logout(r.Context(), identity.UserID); err != nil {
		responses.Error(w, err)
		return
	}
	responses.NoContent(w)
}
