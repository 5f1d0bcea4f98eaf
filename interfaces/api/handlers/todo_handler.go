package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/services"
	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

type TodoHandler struct {
	todoService services.TodoService
}

func NewTodoHandler(todoService services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	todo, err := h.todoService.CreateTodo(ctx, user.ID, &req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.CreatedResponse(c, dto.TodoToResponse(todo))
}

func (h *TodoHandler) GetTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	// A malformed ID reads the same as a missing todo.
	todoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFoundResponse(c, "Todo not found")
	}

	todo, err := h.todoService.GetTodo(ctx, user.ID, todoID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.TodoToResponse(todo))
}

func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	q, fieldErr := parseListQuery(c)
	if fieldErr != nil {
		return utils.ValidationErrorResponse(c, []models.FieldError{*fieldErr})
	}

	todos, total, err := h.todoService.ListTodos(ctx, user.ID, q)
	if err != nil {
		return h.serviceError(c, err)
	}

	page := q.Page
	if page == 0 {
		page = services.DefaultPage
	}
	limit := q.Limit
	if limit == 0 {
		limit = services.DefaultLimit
	}

	return utils.PaginatedSuccessResponse(c, dto.TodosToResponses(todos), total, page, limit)
}

// parseListQuery reads the list parameters, naming the offending field on any
// malformed value. Range checks live in the service.
func parseListQuery(c *fiber.Ctx) (*dto.ListTodosQuery, *models.FieldError) {
	q := &dto.ListTodosQuery{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &models.FieldError{Field: "page", Message: "must be an integer"}
		}
		q.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &models.FieldError{Field: "limit", Message: "must be an integer"}
		}
		q.Limit = limit
	}
	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &models.FieldError{Field: "completed", Message: "must be true or false"}
		}
		q.Completed = &completed
	}

	return q, nil
}

func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	todoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFoundResponse(c, "Todo not found")
	}

	var req dto.UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	todo, err := h.todoService.UpdateTodo(ctx, user.ID, todoID, &req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.TodoToResponse(todo))
}

func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	todoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFoundResponse(c, "Todo not found")
	}

	if err := h.todoService.DeleteTodo(ctx, user.ID, todoID); err != nil {
		return h.serviceError(c, err)
	}

	return utils.MessageResponse(c, "Todo deleted")
}

func (h *TodoHandler) GetStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	stats, err := h.todoService.Summarize(ctx, user.ID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, stats)
}

func (h *TodoHandler) BulkAction(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.BulkActionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	affected, err := h.todoService.ApplyBulk(ctx, user.ID, req.Action)
	if err != nil {
		return h.serviceError(c, err)
	}

	return utils.SuccessResponse(c, dto.BulkActionResponse{
		Action:   req.Action,
		Affected: affected,
	})
}

// serviceError maps domain errors onto the envelope; anything unrecognized is
// a store failure reported generically.
func (h *TodoHandler) serviceError(c *fiber.Ctx, err error) error {
	if ve, ok := models.AsValidationError(err); ok {
		return utils.ValidationErrorResponse(c, ve.Fields)
	}
	if errors.Is(err, models.ErrNotFound) {
		return utils.NotFoundResponse(c, "Todo not found")
	}
	return utils.InternalServerErrorResponse(c)
}
