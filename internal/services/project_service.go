package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkarlin/project-tracker-api/internal/lifecycle"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"github.com/mkarlin/project-tracker-api/internal/policy"
	"github.com/mkarlin/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrAccessDenied         = errors.New("access denied")
	ErrAssignedUserNotFound = errors.New("assigned user does not exist")
	ErrNameRequired         = errors.New("name is required")
	ErrEndBeforeStart       = errors.New("end date is before start date")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	clock       lifecycle.Clock
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository, clock lifecycle.Clock) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		clock:       clock,
	}
}

// ListProjectsInput represents input for listing projects
type ListProjectsInput struct {
	Page     int
	PageSize int
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name           string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	AssignedUserID uint64
}

// ListProjects returns the slice of projects the actor's role is allowed
// to see: everything for admins, owned projects for managers, and for
// regular users the projects containing at least one task assigned to
// them. A user with no assigned tasks gets an empty list, not an error.
func (s *ProjectService) ListProjects(actor *models.User, input ListProjectsInput) ([]models.Project, int64, error) {
	filter := repository.ProjectFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	switch policy.ProjectListScope(actor.Role) {
	case policy.ScopeAll:
		// no scoping
	case policy.ScopeAssigned:
		filter.AssignedUserID = &actor.ID
	case policy.ScopeTaskAssignee:
		filter.TaskAssigneeID = &actor.ID
	default:
		return []models.Project{}, 0, nil
	}

	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// GetProject returns a single project with its tasks. Existence is checked
// before authorization: a missing id is ErrProjectNotFound for every role,
// while an existing project the actor may not see is ErrAccessDenied.
func (s *ProjectService) GetProject(actor *models.User, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "AssignedUser", "Tasks", "Tasks.AssignedUser")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	hasAssignedTask := false
	if actor.Role == models.RoleUser {
		hasAssignedTask, err = s.taskRepo.ExistsForProjectAndAssignee(projectID, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check task assignment: %w", err)
		}
	}

	if !policy.CanViewProject(actor, project, hasAssignedTask) {
		return nil, ErrAccessDenied
	}

	return project, nil
}

// CreateProject creates a new project. Admin only. The initial status is
// IN_PROGRESS when the start date is today, CREATED otherwise; this is
// decided once, here, and never revisited.
func (s *ProjectService) CreateProject(actor *models.User, input CreateProjectInput) (*models.Project, error) {
	if !policy.CanCreateProject(actor) {
		return nil, ErrAccessDenied
	}

	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrEndBeforeStart
	}

	if _, err := s.userRepo.FindByID(input.AssignedUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignedUserNotFound
		}
		return nil, fmt.Errorf("failed to verify assigned user: %w", err)
	}

	project := &models.Project{
		Name:           input.Name,
		Description:    input.Description,
		Status:         lifecycle.InitialStatus(input.StartDate, s.clock.Now()),
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		AssignedUserID: input.AssignedUserID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "AssignedUser", "Tasks")
}
