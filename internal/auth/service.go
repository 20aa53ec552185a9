package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/essalvador31/ShoppingListManager/internal/user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Login verifies the credentials and issues a bearer token encoding the
// username and a 24h expiry.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	existingUser, err := s.userService.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", ErrInternalError
	}

	if !s.userService.VerifyPassword(existingUser, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessJWT(existingUser.Username, defaultJWTDuration)
	if err != nil {
		return "", ErrInternalError
	}
	return token, nil
}
