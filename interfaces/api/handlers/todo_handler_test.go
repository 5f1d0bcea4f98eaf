package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-api/application/serviceimpl"
	"todo-api/domain/models"
	"todo-api/domain/services"
	"todo-api/infrastructure/nats"
	"todo-api/infrastructure/postgres"
	"todo-api/interfaces/api/handlers"
	"todo-api/interfaces/api/middleware"
	"todo-api/interfaces/api/routes"
	"todo-api/pkg/utils"
)

const testJWTSecret = "test-secret"

// envelope mirrors utils.Response with data left raw for per-test decoding.
type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       json.RawMessage     `json:"data"`
	Errors     []models.FieldError `json:"errors"`
	Pagination *utils.Pagination   `json:"pagination"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Todo{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	publisher := nats.NewNoopPublisher()
	svc := &handlers.Services{
		TodoService: serviceimpl.NewTodoService(postgres.NewTodoRepository(db), publisher),
		UserService: serviceimpl.NewUserService(postgres.NewUserRepository(db), testJWTSecret),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	routes.SetupRoutes(app, handlers.NewHandlers(svc), testJWTSecret)
	return app
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	claims := utils.JWTClaims{
		UserID:   userID.String(),
		Username: "tester",
		Email:    "tester@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: invalid envelope: %v", method, path, err)
	}
	return resp.StatusCode, &env
}

func createTodo(t *testing.T, app *fiber.App, token string, body map[string]any) map[string]any {
	t.Helper()

	status, env := doRequest(t, app, http.MethodPost, "/api/v1/todos/", token, body)
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("create todo: status=%d success=%v message=%q", status, env.Success, env.Message)
	}

	var todo map[string]any
	if err := json.Unmarshal(env.Data, &todo); err != nil {
		t.Fatalf("create todo: invalid data: %v", err)
	}
	return todo
}

func TestTodoHandler_RequiresAuth(t *testing.T) {
	app := setupApp(t)

	status, env := doRequest(t, app, http.MethodGet, "/api/v1/todos/", "", nil)
	if status != http.StatusUnauthorized || env.Success {
		t.Errorf("missing token: status=%d success=%v", status, env.Success)
	}

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/todos/", "not-a-jwt", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("garbage token: status=%d, want 401", status)
	}
}

func TestTodoHandler_CreateAndGet(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	created := createTodo(t, app, token, map[string]any{
		"text":     "Buy milk",
		"priority": "high",
		"category": "home",
	})
	if created["text"] != "Buy milk" || created["priority"] != "high" || created["completed"] != false {
		t.Errorf("created todo = %v", created)
	}

	status, env := doRequest(t, app, http.MethodGet, "/api/v1/todos/"+created["id"].(string), token, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("get todo: status=%d success=%v", status, env.Success)
	}

	var fetched map[string]any
	if err := json.Unmarshal(env.Data, &fetched); err != nil {
		t.Fatalf("get todo: invalid data: %v", err)
	}
	if fetched["id"] != created["id"] || fetched["text"] != "Buy milk" {
		t.Errorf("fetched todo = %v", fetched)
	}
}

func TestTodoHandler_CreateValidation(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing text", map[string]any{}, "text"},
		{"bad priority", map[string]any{"text": "x", "priority": "urgent"}, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doRequest(t, app, http.MethodPost, "/api/v1/todos/", token, tt.body)
			if status != http.StatusBadRequest || env.Success {
				t.Fatalf("status=%d success=%v", status, env.Success)
			}
			if len(env.Errors) == 0 || env.Errors[0].Field != tt.field {
				t.Errorf("errors = %v, want field %q", env.Errors, tt.field)
			}
		})
	}
}

func TestTodoHandler_MalformedIDReadsAsNotFound(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	for _, path := range []string{
		"/api/v1/todos/not-a-uuid",
		"/api/v1/todos/" + uuid.New().String(),
	} {
		status, env := doRequest(t, app, http.MethodGet, path, token, nil)
		if status != http.StatusNotFound || env.Success {
			t.Errorf("GET %s: status=%d success=%v, want 404", path, status, env.Success)
		}
	}
}

func TestTodoHandler_OwnerIsolation(t *testing.T) {
	app := setupApp(t)
	alice := signToken(t, uuid.New())
	bob := signToken(t, uuid.New())

	created := createTodo(t, app, alice, map[string]any{"text": "secret plan"})
	id := created["id"].(string)

	status, _ := doRequest(t, app, http.MethodGet, "/api/v1/todos/"+id, bob, nil)
	if status != http.StatusNotFound {
		t.Errorf("foreign read: status=%d, want 404", status)
	}

	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/todos/"+id, bob, nil)
	if status != http.StatusNotFound {
		t.Errorf("foreign delete: status=%d, want 404", status)
	}

	status, env := doRequest(t, app, http.MethodGet, "/api/v1/todos/", bob, nil)
	if status != http.StatusOK || env.Pagination.TotalTodos != 0 {
		t.Errorf("foreign list should be empty, totalTodos=%d", env.Pagination.TotalTodos)
	}
}

func TestTodoHandler_ListPaginationEnvelope(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	for i := 0; i < 12; i++ {
		createTodo(t, app, token, map[string]any{"text": fmt.Sprintf("task %d", i)})
	}

	status, env := doRequest(t, app, http.MethodGet, "/api/v1/todos/?page=2&limit=5", token, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("list: status=%d success=%v", status, env.Success)
	}
	if env.Pagination == nil {
		t.Fatal("list response must carry pagination")
	}

	p := env.Pagination
	if p.Current != 2 || p.Total != 3 || !p.HasNext || !p.HasPrev || p.TotalTodos != 12 {
		t.Errorf("pagination = %+v, want current=2 total=3 hasNext hasPrev totalTodos=12", p)
	}

	var todos []map[string]any
	if err := json.Unmarshal(env.Data, &todos); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if len(todos) != 5 {
		t.Errorf("page length = %d, want 5", len(todos))
	}

	// Omitted params use the shared defaults: page 1, limit 10.
	status, env = doRequest(t, app, http.MethodGet, "/api/v1/todos/", token, nil)
	if status != http.StatusOK || env.Pagination == nil {
		t.Fatalf("default list: status=%d", status)
	}
	p = env.Pagination
	if p.Current != services.DefaultPage || p.Total != 2 || p.HasPrev || !p.HasNext || p.TotalTodos != 12 {
		t.Errorf("default pagination = %+v, want current=1 total=2 hasNext totalTodos=12", p)
	}
	if err := json.Unmarshal(env.Data, &todos); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if len(todos) != services.DefaultLimit {
		t.Errorf("default page length = %d, want %d", len(todos), services.DefaultLimit)
	}
}

func TestTodoHandler_ListQueryValidation(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	tests := []struct {
		query string
		field string
	}{
		{"?page=abc", "page"},
		{"?limit=ten", "limit"},
		{"?completed=maybe", "completed"},
		{"?page=0", "page"},
		{"?limit=500", "limit"},
		{"?sortBy=owner", "sortBy"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, env := doRequest(t, app, http.MethodGet, "/api/v1/todos/"+tt.query, token, nil)
			if status != http.StatusBadRequest || env.Success {
				t.Fatalf("status=%d success=%v, want 400", status, env.Success)
			}
			if len(env.Errors) == 0 || env.Errors[0].Field != tt.field {
				t.Errorf("errors = %v, want field %q", env.Errors, tt.field)
			}
		})
	}
}

func TestTodoHandler_UpdateAndDeadlineNull(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	deadline := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	created := createTodo(t, app, token, map[string]any{"text": "with deadline", "deadline": deadline})
	id := created["id"].(string)

	status, env := doRequest(t, app, http.MethodPut, "/api/v1/todos/"+id, token, map[string]any{
		"text":     "renamed",
		"deadline": nil,
	})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("update: status=%d success=%v message=%q", status, env.Success, env.Message)
	}

	var updated map[string]any
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if updated["text"] != "renamed" {
		t.Errorf("text = %v, want renamed", updated["text"])
	}
	if _, present := updated["deadline"]; present {
		t.Errorf("explicit null should clear the deadline, got %v", updated["deadline"])
	}
}

func TestTodoHandler_StatsAndBulk(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	createTodo(t, app, token, map[string]any{"text": "Buy milk"})
	yesterday := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
	createTodo(t, app, token, map[string]any{"text": "File taxes", "deadline": yesterday})

	status, env := doRequest(t, app, http.MethodGet, "/api/v1/todos/stats/summary", token, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("stats: status=%d success=%v", status, env.Success)
	}

	var stats map[string]int64
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("invalid stats data: %v", err)
	}
	if stats["total"] != 2 || stats["completed"] != 0 || stats["pending"] != 2 || stats["overdue"] != 1 {
		t.Errorf("stats = %v, want total=2 completed=0 pending=2 overdue=1", stats)
	}

	status, env = doRequest(t, app, http.MethodPatch, "/api/v1/todos/bulk", token, map[string]any{"action": "complete-all"})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("bulk: status=%d success=%v", status, env.Success)
	}

	var bulk map[string]any
	if err := json.Unmarshal(env.Data, &bulk); err != nil {
		t.Fatalf("invalid bulk data: %v", err)
	}
	if bulk["action"] != "complete-all" || bulk["affected"] != float64(2) {
		t.Errorf("bulk = %v, want action=complete-all affected=2", bulk)
	}

	// Second run is a no-op; unknown actions name the field.
	status, env = doRequest(t, app, http.MethodPatch, "/api/v1/todos/bulk", token, map[string]any{"action": "complete-all"})
	if status != http.StatusOK {
		t.Fatalf("bulk repeat: status=%d", status)
	}
	if err := json.Unmarshal(env.Data, &bulk); err != nil {
		t.Fatalf("invalid bulk data: %v", err)
	}
	if bulk["affected"] != float64(0) {
		t.Errorf("repeat affected = %v, want 0", bulk["affected"])
	}

	status, env = doRequest(t, app, http.MethodPatch, "/api/v1/todos/bulk", token, map[string]any{"action": "archive-all"})
	if status != http.StatusBadRequest || len(env.Errors) == 0 || env.Errors[0].Field != "action" {
		t.Errorf("unknown action: status=%d errors=%v, want 400 on field action", status, env.Errors)
	}
}

func TestTodoHandler_DeleteLifecycle(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	created := createTodo(t, app, token, map[string]any{"text": "ephemeral"})
	id := created["id"].(string)

	status, env := doRequest(t, app, http.MethodDelete, "/api/v1/todos/"+id, token, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("delete: status=%d success=%v", status, env.Success)
	}

	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/todos/"+id, token, nil)
	if status != http.StatusNotFound {
		t.Errorf("second delete: status=%d, want 404", status)
	}
}
