package handler

import (
	"log/slog"
	"net/http"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/telemetry"

	"github.com/gin-gonic/gin"
)

type TwoFactorHandler struct {
	svc     port.TwoFactorService
	metrics *telemetry.AppMetrics
}

func NewTwoFactorHandler(svc port.TwoFactorService, metrics *telemetry.AppMetrics) *TwoFactorHandler {
	return &TwoFactorHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (h *TwoFactorHandler) GenerateSecret(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	qrCode, err := h.svc.GenerateSecret(ctx, &user)

	if err != nil {
		slog.Error("TwoFactor#GenerateSecret", "error", err)
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, qrCode)
}

func (h *TwoFactorHandler) Enable(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	params, err := util.ParamsToMap[request.OtpCodeRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	message, err := h.svc.Enable(ctx, &user, params.OtpCode)

	if err != nil {
		slog.Error("TwoFactor#Enable", "error", err)
		h.metrics.RecordTwoFactorCheck(ctx, "enable", "failure")
		helper.SendDomainError(c, err)
		return
	}

	h.metrics.RecordTwoFactorCheck(ctx, "enable", "success")

	helper.SendSuccess(c, http.StatusOK, nil, message)
}

func (h *TwoFactorHandler) Disable(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	params, err := util.ParamsToMap[request.OtpCodeRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	message, err := h.svc.Disable(ctx, &user, params.OtpCode)

	if err != nil {
		slog.Error("TwoFactor#Disable", "error", err)
		h.metrics.RecordTwoFactorCheck(ctx, "disable", "failure")
		helper.SendDomainError(c, err)
		return
	}

	h.metrics.RecordTwoFactorCheck(ctx, "disable", "success")

	helper.SendSuccess(c, http.StatusOK, nil, message)
}

// Login finishes the second step for accounts with 2FA enabled. It is public:
// the caller proves identity with email plus a fresh code.
func (h *TwoFactorHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.TwoFactorLoginRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	token, err := h.svc.SignInWith2FA(ctx, params.Email, params.OtpCode)

	if err != nil {
		slog.Error("TwoFactor#Login", "error", err)
		h.metrics.RecordTwoFactorCheck(ctx, "login", "failure")
		helper.SendDomainError(c, err)
		return
	}

	h.metrics.RecordTwoFactorCheck(ctx, "login", "success")

	c.JSON(http.StatusOK, token)
}
