package dto

import (
	"todo-api/domain/models"
)

func TodoToResponse(todo *models.Todo) *TodoResponse {
	if todo == nil {
		return nil
	}
	return &TodoResponse{
		ID:        todo.ID,
		Text:      todo.Text,
		Completed: todo.Completed,
		Deadline:  todo.Deadline,
		Priority:  todo.Priority,
		Category:  todo.Category,
		UserID:    todo.UserID,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}

func TodosToResponses(todos []*models.Todo) []TodoResponse {
	responses := make([]TodoResponse, len(todos))
	for i, todo := range todos {
		responses[i] = *TodoToResponse(todo)
	}
	return responses
}

func UserToResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
