package routes

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/interfaces/api/handlers"
	"todo-api/interfaces/api/middleware"
)

func SetupTodoRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	todos := api.Group("/todos")
	todos.Use(middleware.Protected(jwtSecret))

	todos.Get("/", h.TodoHandler.ListTodos)
	todos.Post("/", h.TodoHandler.CreateTodo)
	// Fixed paths before /:id so they are not swallowed by the param route.
	todos.Get("/stats/summary", h.TodoHandler.GetStats)
	todos.Patch("/bulk", h.TodoHandler.BulkAction)
	todos.Get("/:id", h.TodoHandler.GetTodo)
	todos.Put("/:id", h.TodoHandler.UpdateTodo)
	todos.Delete("/:id", h.TodoHandler.DeleteTodo)
}
