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
	"github.com/mkarlin/project-tracker-api/internal/services"
	"github.com/mkarlin/project-tracker-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the projects visible to the current user's role
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(actor, services.ListProjectsInput{
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns a single project with its tasks. A missing id is 404
// for every role; an existing project the caller may not see is 403. The
// two are never conflated.
func (h *ProjectHandler) GetProject(c *gin.Context) {
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

	project, err := h.projectService.GetProject(actor, projectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrAccessDenied):
			apierrors.Forbidden(c)
		default:
			apierrors.InternalError(c, "Failed to fetch project")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a new project (admin only)
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name           string `json:"name" binding:"required"`
		Description    string `json:"description"`
		StartDate      string `json:"start_date" binding:"required"`
		EndDate        string `json:"end_date" binding:"required"`
		AssignedUserID uint64 `json:"assigned_user_id" binding:"required"`
	}

	var req CreateProjectRequest
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

	project, err := h.projectService.CreateProject(actor, services.CreateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      startDate,
		EndDate:        endDate,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			apierrors.Forbidden(c)
		case errors.Is(err, services.ErrNameRequired):
			apierrors.BadRequestWithDetails(c, "Invalid project", gin.H{"name": "required"})
		case errors.Is(err, services.ErrEndBeforeStart):
			apierrors.BadRequestWithDetails(c, "Invalid project", gin.H{"end_date": "must not precede start_date"})
		case errors.Is(err, services.ErrAssignedUserNotFound):
			apierrors.BadRequestWithDetails(c, "Invalid project", gin.H{"assigned_user_id": "user does not exist"})
		default:
			apierrors.InternalError(c, "Failed to create project")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}
