package handler

import (
	"log/slog"
	"net/http"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/telemetry"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc     port.AuthService
	metrics *telemetry.AppMetrics
}

func NewAuthHandler(svc port.AuthService, metrics *telemetry.AppMetrics) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.SignUp(ctx, &params)

	if err != nil {
		slog.Error("Auth#Register", "error", err)
		a.metrics.RecordAuthOperation(ctx, "register", "failure")
		helper.SendDomainError(c, err)
		return
	}

	a.metrics.RecordAuthOperation(ctx, "register", "success")

	userResponse := response.UserResponse{
		UUID:               user.UUID.String(),
		Email:              user.Email,
		Role:               string(user.Role),
		IsTwoFactorEnabled: user.IsTwoFactorEnabled,
		IsOAuthUser:        user.IsOAuthUser,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}

	helper.SendSuccess(c, http.StatusCreated, userResponse)
}

// Login answers either an access token or a 2FA challenge, depending on the
// account.
func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	result, err := a.svc.SignIn(ctx, &params)

	if err != nil {
		slog.Error("Auth#Login", "error", err)
		a.metrics.RecordAuthOperation(ctx, "login", "failure")
		helper.SendDomainError(c, err)
		return
	}

	if result.Requires2FA {
		a.metrics.RecordAuthOperation(ctx, "login", "challenge")
	} else {
		a.metrics.RecordAuthOperation(ctx, "login", "success")
	}

	c.JSON(http.StatusOK, result)
}

func (a *AuthHandler) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	userResponse := response.UserResponse{
		UUID:               user.UUID.String(),
		Email:              user.Email,
		Role:               string(user.Role),
		IsTwoFactorEnabled: user.IsTwoFactorEnabled,
		IsOAuthUser:        user.IsOAuthUser,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}

	helper.SendSuccess(c, http.StatusOK, userResponse)
}
