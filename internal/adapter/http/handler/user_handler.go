package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/core/port"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

func (u *UserHandler) GetUsers(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	data, err := u.svc.GetUsers(ctx, page, limit)

	if err != nil {
		slog.Error("User#GetUsers", "error", err)
		helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}
