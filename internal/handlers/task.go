package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkarlin/project-tracker-api/internal/dto"
	apierrors "github.com/mkarlin/project-tracker-api/internal/errors"
	"github.com/mkarlin/project-tracker-api/internal/middleware"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"github.com/mkarlin/project-tracker-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task under a project. Admins anywhere, managers
// only under their own projects.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type CreateTaskRequest struct {
		Name           string  `json:"name" binding:"required"`
		Description    string  `json:"description"`
		StartDate      string  `json:"start_date" binding:"required"`
		EndDate        string  `json:"end_date" binding:"required"`
		AssignedUserID *uint64 `json:"assigned_user_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid date", gin.H{"start_date": "must be YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid date", gin.H{"end_date": "must be YYYY-MM-DD"})
		return
	}

	task, err := h.taskService.CreateTask(actor, projectID, services.CreateTaskInput{
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      startDate,
		EndDate:        endDate,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrAccessDenied):
			apierrors.Forbidden(c)
		case errors.Is(err, services.ErrNameRequired):
			apierrors.BadRequestWithDetails(c, "Invalid task", gin.H{"name": "required"})
		case errors.Is(err, services.ErrEndBeforeStart):
			apierrors.BadRequestWithDetails(c, "Invalid task", gin.H{"end_date": "must not precede start_date"})
		case errors.Is(err, services.ErrAssignedUserNotFound):
			apierrors.BadRequestWithDetails(c, "Invalid task", gin.H{"assigned_user_id": "user does not exist"})
		default:
			apierrors.InternalError(c, "Failed to create task")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTaskStatus moves a task to a new status and returns the task with
// its recomputed derived fields.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	if _, exists := middleware.GetUser(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateStatusRequest struct {
		Status models.Status `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(taskID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrInvalidStatus):
			apierrors.BadRequestWithDetails(c, "Invalid status", gin.H{"status": "must be CREATED, IN_PROGRESS, OVERDUE or COMPLETED"})
		default:
			apierrors.InternalError(c, "Failed to update task")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}
