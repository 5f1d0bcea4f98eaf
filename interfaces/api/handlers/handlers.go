package handlers

import (
	"todo-api/domain/services"
)

// Services contains everything the handlers depend on.
type Services struct {
	TodoService services.TodoService
	UserService services.UserService
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	TodoHandler *TodoHandler
	UserHandler *UserHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		TodoHandler: NewTodoHandler(services.TodoService),
		UserHandler: NewUserHandler(services.UserService),
	}
}
