package utils

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/domain/models"
)

// ========== Response Structures ==========

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Errors     []models.FieldError `json:"errors,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
}

// Pagination describes the page window of a list response. Total is the page
// count; TotalTodos is the filtered pre-pagination match count.
type Pagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
	TotalTodos int64 `json:"totalTodos"`
}

// ========== Success Responses ==========

func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    data,
	})
}

func CreatedResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Data:    data,
	})
}

func MessageResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
	})
}

func PaginatedSuccessResponse(c *fiber.Ctx, data any, total int64, page, limit int) error {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Current:    page,
			Total:      totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
			TotalTodos: total,
		},
	})
}

// ========== Error Responses ==========

func ValidationErrorResponse(c *fiber.Ctx, fields []models.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Message: "Validation failed",
		Errors:  fields,
	})
}

func BadRequestResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Message: message,
	})
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(Response{
		Success: false,
		Message: message,
	})
}

func NotFoundResponse(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return c.Status(fiber.StatusNotFound).JSON(Response{
		Success: false,
		Message: message,
	})
}

func TooManyRequestsResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(Response{
		Success: false,
		Message: "Too many requests",
	})
}

// InternalServerErrorResponse hides store-level detail from the caller; the
// underlying error is logged at the operation boundary instead.
func InternalServerErrorResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(Response{
		Success: false,
		Message: "Internal server error",
	})
}

func StatusResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
	})
}
