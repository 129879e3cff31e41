package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkarlin/project-tracker-api/internal/dto"
	apierrors "github.com/mkarlin/project-tracker-api/internal/errors"
	"github.com/mkarlin/project-tracker-api/internal/middleware"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"github.com/mkarlin/project-tracker-api/internal/services"
	"github.com/mkarlin/project-tracker-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns all users, optionally filtered by role (admin only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListUsersInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := models.Role(roleStr)
		input.Role = &role
	}

	users, total, err := h.userService.ListUsers(actor, input)
	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			apierrors.Forbidden(c)
			return
		}
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateUser creates a new user (admin only)
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateUserRequest struct {
		Username  string      `json:"username" binding:"required,min=3,max=150"`
		Password  string      `json:"password" binding:"required"`
		Email     string      `json:"email"`
		FirstName string      `json:"first_name"`
		LastName  string      `json:"last_name"`
		Role      models.Role `json:"role" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(actor, services.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			apierrors.Forbidden(c)
		case errors.Is(err, services.ErrUsernameRequired):
			apierrors.BadRequestWithDetails(c, "Invalid user", gin.H{"username": "required"})
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.BadRequestWithDetails(c, "Invalid user", gin.H{"username": "already exists"})
		case errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequestWithDetails(c, "Invalid user", gin.H{"password": "too short"})
		case errors.Is(err, services.ErrInvalidRole):
			apierrors.BadRequestWithDetails(c, "Invalid user", gin.H{"role": "must be admin, manager or user"})
		default:
			apierrors.InternalError(c, "Failed to create user")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}
