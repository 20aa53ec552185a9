package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 80
	minUsernameLength = 3
	bcryptCost        = 12
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrUsernameLength    = fmt.Errorf("username is too long or too short, max length: %d, min length: %d", maxUsernameLength, minUsernameLength)
	ErrEmptyPassword     = errors.New("password must not be empty")
	ErrInternalError     = errors.New("internal Server Error")
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Service interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	VerifyPassword(user *User, password string) bool
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	if len(username) > maxUsernameLength || len(username) < minUsernameLength {
		return nil, ErrUsernameLength
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if email != "" {
		if err := checkmail.ValidateFormat(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}

	existingUser, err := s.repo.getUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		fmt.Println("Error with database request:", err)
		return nil, ErrInternalError
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		fmt.Println("Error during hashing the password")
		return nil, ErrInternalError
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err = s.repo.createUser(ctx, user)
	if err != nil {
		fmt.Println("Error during creating the user: ", err)
		return nil, ErrInternalError
	}

	return user, nil
}

func (s *service) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.getUserByUsername(ctx, username)
}

func (s *service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.getUserByID(ctx, id)
}

func (s *service) VerifyPassword(user *User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
