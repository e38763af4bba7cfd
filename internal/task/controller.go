package task

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/observability"
	"taskboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted" binding:"required"`
}

type TaskController struct {
	service TaskServiceInterface
}

func NewTaskController(service TaskServiceInterface) *TaskController {
	return &TaskController{
		service: service,
	}
}

// ListTasks returns the caller's tasks, newest first.
func (tc *TaskController) ListTasks(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	tasks, err := tc.service.List(userID)
	if err != nil {
		recordTaskOp("list", "error")
		logrus.WithError(err).Error("Failed to list tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list tasks"})
		return
	}

	recordTaskOp("list", "success")
	c.JSON(http.StatusOK, tasks)
}

// GetTask returns a single task. Another user's task reads as 404.
func (tc *TaskController) GetTask(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid task id"})
		return
	}

	task, err := tc.service.Get(userID, taskID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			recordTaskOp("get", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
			return
		}
		recordTaskOp("get", "error")
		logrus.WithError(err).Error("Failed to get task")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get task"})
		return
	}

	recordTaskOp("get", "success")
	c.JSON(http.StatusOK, task)
}

// CreateTask creates a task owned by the caller.
func (tc *TaskController) CreateTask(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation failed",
			"details": utils.ValidationDetails(err),
		})
		return
	}

	task, err := tc.service.Create(userID, req.Title, req.Description, req.DueDate)
	if err != nil {
		recordTaskOp("create", "error")
		logrus.WithError(err).Error("Failed to create task")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create task"})
		return
	}

	recordTaskOp("create", "success")
	c.Header("Location", fmt.Sprintf("/api/task/%d", task.ID))
	c.JSON(http.StatusCreated, task)
}

// UpdateTask fully replaces the mutable fields of a task.
func (tc *TaskController) UpdateTask(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid task id"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation failed",
			"details": utils.ValidationDetails(err),
		})
		return
	}

	_, err = tc.service.Update(userID, taskID, req.Title, req.Description, req.DueDate, *req.IsCompleted)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			recordTaskOp("update", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
			return
		}
		recordTaskOp("update", "error")
		logrus.WithError(err).Error("Failed to update task")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update task"})
		return
	}

	recordTaskOp("update", "success")
	c.Status(http.StatusNoContent)
}

// DeleteTask removes a task owned by the caller.
func (tc *TaskController) DeleteTask(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid task id"})
		return
	}

	if err := tc.service.Delete(userID, taskID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			recordTaskOp("delete", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
			return
		}
		recordTaskOp("delete", "error")
		logrus.WithError(err).Error("Failed to delete task")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete task"})
		return
	}

	recordTaskOp("delete", "success")
	c.Status(http.StatusNoContent)
}

func recordTaskOp(operation, result string) {
	if observability.GlobalMetrics != nil {
		observability.GlobalMetrics.TaskOperationsTotal.WithLabelValues(operation, result).Inc()
	}
}
