package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type TaskHandler struct {
	svc port.TaskService
}

func NewTaskHandler(svc port.TaskService) *TaskHandler {
	return &TaskHandler{
		svc: svc,
	}
}

func (t *TaskHandler) GetTasks(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.task.GetTasks", []attribute.KeyValue{
		attribute.String("handler.operation", "GetTasks"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	filter := port.TaskFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	span.SetAttributes(
		attribute.Int("user.id", userId),
		attribute.String("task.status", filter.Status),
		attribute.Int("task.page", filter.Page),
	)

	data, err := t.svc.GetTasks(ctx, userId, filter)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Task#GetTasks", "error", err, "user_id", userId)
		helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (t *TaskHandler) GetTask(c *gin.Context) {
	ctx := c.Request.Context()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	task, err := t.svc.GetTaskByUUID(ctx, userId, c.Param("uuid"))

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, toTaskResponse(task))
}

func (t *TaskHandler) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	params, err := util.ParamsToMap[request.TaskRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	task, err := t.svc.Create(ctx, domain.Task{
		Title:       params.Title,
		Description: params.Description,
		UserId:      userId,
	})

	if err != nil {
		slog.Error("Task#CreateTask", "error", err, "user_id", userId)
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, toTaskResponse(task))
}

func (t *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	ctx := c.Request.Context()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	params, err := util.ParamsToMap[request.TaskStatusRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	task, err := t.svc.UpdateStatus(ctx, userId, c.Param("uuid"), params.Status)

	if err != nil {
		slog.Error("Task#UpdateTaskStatus", "error", err, "user_id", userId)
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, toTaskResponse(task))
}

func (t *TaskHandler) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	if err := t.svc.DeleteByUUID(ctx, userId, c.Param("uuid")); err != nil {
		slog.Error("Task#DeleteTask", "error", err, "user_id", userId)
		helper.SendDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toTaskResponse(task domain.Task) response.TaskResponse {
	return response.TaskResponse{
		UUID:        task.UUID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.StatusOrFallback(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
