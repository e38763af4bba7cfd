package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskboard/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskService is a mock implementation of TaskServiceInterface
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(userID int, title string, description *string, dueDate *time.Time) (*Task, error) {
	args := m.Called(userID, title, description, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Task), args.Error(1)
}

func (m *MockTaskService) Get(userID, taskID int) (*Task, error) {
	args := m.Called(userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Task), args.Error(1)
}

func (m *MockTaskService) List(userID int) ([]*Task, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Task), args.Error(1)
}

func (m *MockTaskService) Update(userID, taskID int, title string, description *string, dueDate *time.Time, isCompleted bool) (*Task, error) {
	args := m.Called(userID, taskID, title, description, dueDate, isCompleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Task), args.Error(1)
}

func (m *MockTaskService) Delete(userID, taskID int) error {
	args := m.Called(userID, taskID)
	return args.Error(0)
}

// setupTaskRouter mounts the task routes with a fixed authenticated user,
// mimicking what the auth middleware does on a real request.
func setupTaskRouter(service TaskServiceInterface, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := NewTaskController(service)

	asUser := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(auth.UserIDKey, userID)
			handler(c)
		}
	}

	router.GET("/api/task", asUser(controller.ListTasks))
	router.GET("/api/task/:id", asUser(controller.GetTask))
	router.POST("/api/task", asUser(controller.CreateTask))
	router.PUT("/api/task/:id", asUser(controller.UpdateTask))
	router.DELETE("/api/task/:id", asUser(controller.DeleteTask))

	return router
}

func doJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListTasks_ReturnsCallerTasksNewestFirst(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	now := time.Now()
	tasks := []*Task{
		{ID: 2, UserID: 1, Title: "Newer", CreatedAt: now, UpdatedAt: now},
		{ID: 1, UserID: 1, Title: "Older", CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)},
	}
	mockService.On("List", 1).Return(tasks, nil)

	w := doJSON(router, "GET", "/api/task", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Newer", resp[0]["title"])
	assert.Equal(t, "Older", resp[1]["title"])

	mockService.AssertExpectations(t)
}

func TestListTasks_EmptyListIsAnArray(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	mockService.On("List", 1).Return([]*Task{}, nil)

	w := doJSON(router, "GET", "/api/task", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetTask_Success(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	now := time.Now()
	mockService.On("Get", 1, 123).Return(&Task{
		ID:          123,
		UserID:      1,
		Title:       "Buy milk",
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil)

	w := doJSON(router, "GET", "/api/task/123", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(123), resp["id"])
	assert.Equal(t, "Buy milk", resp["title"])
	assert.Equal(t, false, resp["isCompleted"])

	mockService.AssertExpectations(t)
}

func TestGetTask_ForeignOrMissingIsNotFound(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 2)

	// The service cannot tell "absent" from "owned by someone else";
	// either way the caller sees 404, never 403.
	mockService.On("Get", 2, 123).Return(nil, ErrTaskNotFound)

	w := doJSON(router, "GET", "/api/task/123", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "task not found", resp["message"])

	mockService.AssertExpectations(t)
}

func TestGetTask_InvalidID(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	w := doJSON(router, "GET", "/api/task/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCreateTask_Success(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	now := time.Now()
	created := &Task{
		ID:          42,
		UserID:      1,
		Title:       "Write spec",
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	mockService.On("Create", 1, "Write spec", (*string)(nil), (*time.Time)(nil)).Return(created, nil)

	w := doJSON(router, "POST", "/api/task", map[string]interface{}{
		"title": "Write spec",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/task/42", w.Header().Get("Location"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(42), resp["id"])
	assert.Equal(t, "Write spec", resp["title"])
	assert.Equal(t, false, resp["isCompleted"])

	mockService.AssertExpectations(t)
}

func TestCreateTask_WithOptionalFields(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	description := "two liters, whole"
	dueDate := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	created := &Task{
		ID:          43,
		UserID:      1,
		Title:       "Buy milk",
		Description: &description,
		DueDate:     &dueDate,
	}
	mockService.On("Create", 1, "Buy milk", &description, &dueDate).Return(created, nil)

	w := doJSON(router, "POST", "/api/task", map[string]interface{}{
		"title":       "Buy milk",
		"description": description,
		"dueDate":     dueDate.Format(time.RFC3339),
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, description, resp["description"])

	mockService.AssertExpectations(t)
}

func TestCreateTask_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			name:    "Missing title",
			payload: map[string]interface{}{"description": "no title"},
		},
		{
			name:    "Title too long",
			payload: map[string]interface{}{"title": strings.Repeat("a", 201)},
		},
		{
			name: "Description too long",
			payload: map[string]interface{}{
				"title":       "ok",
				"description": strings.Repeat("a", 1001),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			router := setupTaskRouter(mockService, 1)

			w := doJSON(router, "POST", "/api/task", tt.payload)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockService.AssertNotCalled(t, "Create",
				mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateTask_Success(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	updated := &Task{ID: 42, UserID: 1, Title: "Write spec v2", IsCompleted: true}
	mockService.On("Update", 1, 42, "Write spec v2", (*string)(nil), (*time.Time)(nil), true).
		Return(updated, nil)

	w := doJSON(router, "PUT", "/api/task/42", map[string]interface{}{
		"title":       "Write spec v2",
		"isCompleted": true,
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	mockService.AssertExpectations(t)
}

func TestUpdateTask_NotFound(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	mockService.On("Update", 1, 42, "Anything", (*string)(nil), (*time.Time)(nil), false).
		Return(nil, ErrTaskNotFound)

	w := doJSON(router, "PUT", "/api/task/42", map[string]interface{}{
		"title":       "Anything",
		"isCompleted": false,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestUpdateTask_MissingIsCompleted(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	// PUT is a full replace; isCompleted must be present even when false
	w := doJSON(router, "PUT", "/api/task/42", map[string]interface{}{
		"title": "Write spec v2",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Update",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTask_FalseIsCompletedIsAccepted(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	updated := &Task{ID: 42, UserID: 1, Title: "Reopened", IsCompleted: false}
	mockService.On("Update", 1, 42, "Reopened", (*string)(nil), (*time.Time)(nil), false).
		Return(updated, nil)

	w := doJSON(router, "PUT", "/api/task/42", map[string]interface{}{
		"title":       "Reopened",
		"isCompleted": false,
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteTask_Success(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	mockService.On("Delete", 1, 42).Return(nil)

	w := doJSON(router, "DELETE", "/api/task/42", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteTask_SecondDeleteIsNotFound(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	mockService.On("Delete", 1, 42).Return(nil).Once()
	mockService.On("Delete", 1, 42).Return(ErrTaskNotFound).Once()

	first := doJSON(router, "DELETE", "/api/task/42", nil)
	second := doJSON(router, "DELETE", "/api/task/42", nil)

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusNotFound, second.Code)

	mockService.AssertExpectations(t)
}

func TestTaskJSON_NeverLeaksAnotherShape(t *testing.T) {
	mockService := new(MockTaskService)
	router := setupTaskRouter(mockService, 1)

	now := time.Now()
	mockService.On("Get", 1, 7).Return(&Task{
		ID: 7, UserID: 1, Title: "Shape check", CreatedAt: now, UpdatedAt: now,
	}, nil)

	w := doJSON(router, "GET", fmt.Sprintf("/api/task/%d", 7), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, key := range []string{"id", "userId", "title", "description", "dueDate", "isCompleted", "createdAt", "updatedAt"} {
		assert.Contains(t, resp, key)
	}
}
