package task

import (
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrTaskNotFound covers both a missing row and a row owned by another
// user. The two cases are indistinguishable on purpose.
var ErrTaskNotFound = errors.New("task not found")

type TaskRepository struct{}

type TaskRepositoryInterface interface {
	Create(tx *sql.Tx, task *Task) error
	GetByID(db *sql.DB, userID, taskID int) (*Task, error)
	ListByUser(db *sql.DB, userID int) ([]*Task, error)
	Update(tx *sql.Tx, task *Task) error
	Delete(tx *sql.Tx, userID, taskID int) error
}

func NewTaskRepository() TaskRepositoryInterface {
	return &TaskRepository{}
}

func (r *TaskRepository) Create(tx *sql.Tx, task *Task) error {
	// A single NOW() per statement keeps created_at == updated_at on
	// freshly created rows.
	query := `
		INSERT INTO tasks (
			user_id, title, description, due_date, is_completed, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(
		query,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate,
		task.IsCompleted,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		logrus.WithError(err).Error("Failed to create task")
		return err
	}

	return nil
}

// GetByID looks the task up scoped to its owner. The owner id is part of
// the WHERE clause, so another user's task reads as absent.
func (r *TaskRepository) GetByID(db *sql.DB, userID, taskID int) (*Task, error) {
	query := `
		SELECT
			id, user_id, title, description, due_date,
			is_completed, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	var t Task
	err := db.QueryRow(query, taskID, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.IsCompleted,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		logrus.WithError(err).Error("Failed to get task by ID")
		return nil, err
	}

	return &t, nil
}

func (r *TaskRepository) ListByUser(db *sql.DB, userID int) ([]*Task, error) {
	query := `
		SELECT
			id, user_id, title, description, due_date,
			is_completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*Task{}

	for rows.Next() {
		var t Task
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.DueDate,
			&t.IsCompleted,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update replaces all mutable fields and refreshes updated_at in a
// single owner-scoped statement; created_at is untouched.
func (r *TaskRepository) Update(tx *sql.Tx, task *Task) error {
	query := `
		UPDATE tasks
		SET title = $1,
		    description = $2,
		    due_date = $3,
		    is_completed = $4,
		    updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(
		query,
		task.Title,
		task.Description,
		task.DueDate,
		task.IsCompleted,
		task.ID,
		task.UserID,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		logrus.WithError(err).Error("Failed to update task")
		return err
	}

	return nil
}

func (r *TaskRepository) Delete(tx *sql.Tx, userID, taskID int) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	result, err := tx.Exec(query, taskID, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to delete task")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
