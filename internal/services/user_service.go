package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkarlin/project-tracker-api/internal/constants"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"github.com/mkarlin/project-tracker-api/internal/policy"
	"github.com/mkarlin/project-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrPasswordTooShort = errors.New("password too short")
	ErrInvalidRole      = errors.New("role must be admin, manager or user")
)

// UserService handles user management. Both operations are admin only.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsersInput represents input for listing users
type ListUsersInput struct {
	Role     *models.Role
	Page     int
	PageSize int
}

// CreateUserInput represents the required information to create a user
type CreateUserInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Role      models.Role
}

// ListUsers returns users, optionally filtered by role
func (s *UserService) ListUsers(actor *models.User, input ListUsersInput) ([]models.User, int64, error) {
	if !policy.CanManageUsers(actor) {
		return nil, 0, ErrAccessDenied
	}

	users, total, err := s.userRepo.List(repository.UserFilter{
		Role:     input.Role,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// CreateUser creates a new user with a hashed password
func (s *UserService) CreateUser(actor *models.User, input CreateUserInput) (*models.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrAccessDenied
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
