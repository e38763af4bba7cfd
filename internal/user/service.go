package user

import (
	"database/sql"
	"errors"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/utils"

	"github.com/sirupsen/logrus"
)

// ErrInvalidCredentials is returned for both an unknown username and a
// wrong password so callers cannot enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid username or password")

type LoginResult struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

type UserService struct {
	repo   UserRepositoryInterface
	db     *sql.DB
	tokens *auth.TokenService
}

type UserServiceInterface interface {
	Register(username, password string) (int, error)
	Login(username, password string) (*LoginResult, error)
	GetUserByID(id int) (*User, error)
}

func NewUserService(repo UserRepositoryInterface, db *sql.DB, tokens *auth.TokenService) UserServiceInterface {
	return &UserService{
		repo:   repo,
		db:     db,
		tokens: tokens,
	}
}

// Register creates a new user with a hashed password. Returns
// ErrUsernameTaken when the username is already in use.
func (s *UserService) Register(username, password string) (int, error) {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		return 0, err
	}

	user := &User{
		Username:     username,
		PasswordHash: hashedPassword,
	}

	var id int
	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		id, err = s.repo.Create(tx, user)
		return err
	}); err != nil {
		return 0, err
	}

	return id, nil
}

// Login verifies credentials and issues a bearer token. Lookup failure
// and password mismatch are indistinguishable to the caller.
func (s *UserService) Login(username, password string) (*LoginResult, error) {
	user, err := s.repo.GetByUsername(s.db, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue token")
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUserByID retrieves a user by id.
func (s *UserService) GetUserByID(id int) (*User, error) {
	return s.repo.GetByID(s.db, id)
}
