package user

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

type UserRepository struct{}

type UserRepositoryInterface interface {
	Create(tx *sql.Tx, user *User) (int, error)
	GetByID(db *sql.DB, id int) (*User, error)
	GetByUsername(db *sql.DB, username string) (*User, error)
}

func NewUserRepository() UserRepositoryInterface {
	return &UserRepository{}
}

// Create inserts a new user row. Uniqueness of username is enforced by
// the database index; a violation maps to ErrUsernameTaken so there is
// no read-then-write race.
func (r *UserRepository) Create(tx *sql.Tx, user *User) (int, error) {
	query := `
		INSERT INTO users (
			username, password_hash, created_at
		)
		VALUES ($1, $2, NOW())
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		user.Username,
		user.PasswordHash,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrUsernameTaken
		}
		logrus.WithError(err).Error("Failed to create user")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  id,
		"username": user.Username,
	}).Info("User created successfully")

	return id, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(db *sql.DB, id int) (*User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).Error("Failed to get user by ID")
		return nil, err
	}

	return user, nil
}

// GetByUsername retrieves a user by username. The comparison is exact,
// so uniqueness is case-sensitive.
func (r *UserRepository) GetByUsername(db *sql.DB, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	user := &User{}
	err := db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).Error("Failed to get user by username")
		return nil, err
	}

	return user, nil
}
