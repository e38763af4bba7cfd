package task

import (
	"database/sql"
	"time"

	"taskboard/internal/utils"
)

type TaskServiceInterface interface {
	Create(userID int, title string, description *string, dueDate *time.Time) (*Task, error)
	Get(userID, taskID int) (*Task, error)
	List(userID int) ([]*Task, error)
	Update(userID, taskID int, title string, description *string, dueDate *time.Time, isCompleted bool) (*Task, error)
	Delete(userID, taskID int) error
}

type TaskService struct {
	repo TaskRepositoryInterface
	db   *sql.DB
}

func NewTaskService(repo TaskRepositoryInterface, db *sql.DB) TaskServiceInterface {
	return &TaskService{
		repo: repo,
		db:   db,
	}
}

func (s *TaskService) Create(userID int, title string, description *string, dueDate *time.Time) (*Task, error) {
	task := &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		IsCompleted: false,
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.repo.Create(tx, task)
	}); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Get(userID, taskID int) (*Task, error) {
	return s.repo.GetByID(s.db, userID, taskID)
}

func (s *TaskService) List(userID int) ([]*Task, error) {
	return s.repo.ListByUser(s.db, userID)
}

// Update is a full replace of the mutable fields. Concurrent updates to
// the same row are last-write-wins; there is no version column.
func (s *TaskService) Update(userID, taskID int, title string, description *string, dueDate *time.Time, isCompleted bool) (*Task, error) {
	task := &Task{
		ID:          taskID,
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		IsCompleted: isCompleted,
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.repo.Update(tx, task)
	}); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(userID, taskID int) error {
	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.repo.Delete(tx, userID, taskID)
	})
}
