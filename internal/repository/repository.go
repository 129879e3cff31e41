package repository

import (
	"github.com/mkarlin/project-tracker-api/internal/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with role scoping and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// UpdateHoursConsumed persists a recomputed hours aggregate
	UpdateHoursConsumed(id uint64, hours int64) error
}

// ProjectFilter holds scoping options for listing projects. At most one of
// AssignedUserID and TaskAssigneeID is set; both nil means no scoping.
type ProjectFilter struct {
	// AssignedUserID restricts to projects assigned to this user.
	AssignedUserID *uint64
	// TaskAssigneeID restricts to projects containing at least one task
	// assigned to this user.
	TaskAssigneeID *uint64
	Page           int
	PageSize       int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// ListByProject lists all tasks belonging to a project
	ListByProject(projectID uint64) ([]models.Task, error)

	// ExistsForProjectAndAssignee reports whether the project contains at
	// least one task assigned to the user
	ExistsForProjectAndAssignee(projectID, userID uint64) (bool, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users, optionally filtered by role
	List(filter UserFilter) ([]models.User, int64, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role     *models.Role
	Page     int
	PageSize int
}
