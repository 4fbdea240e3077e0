package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mkessler/Todo-Api/internal/api/models"
	"mkessler/Todo-Api/internal/api/repository"
	"mkessler/Todo-Api/internal/validator"
)

// tokenLifetime is how long an issued session token stays valid, both in
// the JWT exp claim and in the token registry.
const tokenLifetime = 72 * time.Hour

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
	IssueToken(ctx context.Context, user *models.User) (string, error)
}

type userService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	secret    []byte
}

// NewUserService creates a new UserService signing tokens with secret.
func NewUserService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, secret []byte) UserService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		secret:    secret,
	}
}

// Register creates a new account. The password verification check runs
// before anything else so a mismatch never touches the database.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Password != req.VerifyPassword {
		return nil, ErrPasswordMismatch
	}

	if err := validator.Email(req.Email); err != nil {
		return nil, ErrInvalidEmail
	}

	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrUsernameTaken
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "username", user.Username)
	return user, nil
}

// VerifyCredentials resolves a username/password pair to a user. Lookup
// misses and hash mismatches report the same error.
func (s *userService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken mints a session JWT for an already-authenticated user and
// records its jti in the token registry with a matching TTL.
func (s *userService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	jti := uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"un":  user.Username,
		"jti": jti,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.tokenRepo.Save(ctx, jti, user.Username, tokenLifetime); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "session token issued", "username", user.Username, "jti", jti)
	return tokenString, nil
}
