// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"job_backend/internal/api"
	"job_backend/internal/feature/auth/domain/entity"
	jwtmw "job_backend/internal/platform/jwt"
	"job_backend/internal/shared/apperr"
)

// AuthUsecase defines the auth operations the handler needs.
// Interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, session *entity.Session) error
}

// AuthHandler handles the auth endpoints.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, bindError(err))
		return
	}
	email := string(req.Email)
	if err := h.auth.Register(c.Request.Context(), email, req.Password); err != nil {
		apperr.Respond(c, err)
		return
	}
	slog.Info("user registered", "email", email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "User created"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, bindError(err))
		return
	}
	email := string(req.Email)
	token, err := h.auth.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	slog.Info("user login successful", "email", email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken: token,
		TokenType:   api.Bearer,
		Message:     "Login success",
	})
}

// Me handles GET /me. It must run behind jwtmw.AuthRequired.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		apperr.Respond(c, jwtmw.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, api.MeResponse{Email: openapi_types.Email(user.Email)})
}

// Logout handles POST /logout by revoking the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := jwtmw.CurrentSession(c)
	if !ok {
		apperr.Respond(c, jwtmw.ErrNotAuthenticated)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), session); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out"})
}

// bindError turns a request binding failure into a validation error with a
// short field-level message.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return apperr.Wrap(apperr.KindValidation, strings.Join(msgs, "; "), err)
	case errors.Is(err, openapi_types.ErrValidationEmail):
		return apperr.Wrap(apperr.KindValidation, "email: value is not a valid email address", err)
	default:
		return apperr.Wrap(apperr.KindValidation, "Invalid request body", err)
	}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + ": field required"
	case "email":
		return field + ": value is not a valid email address"
	default:
		return field + ": failed on " + fe.Tag()
	}
}
