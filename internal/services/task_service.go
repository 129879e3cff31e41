package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mkarlin/project-tracker-api/internal/lifecycle"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"github.com/mkarlin/project-tracker-api/internal/policy"
	"github.com/mkarlin/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)

// TaskService handles task business logic. It holds the raw *gorm.DB so
// the task write and the project hours recompute share one transaction:
// two concurrent completions on the same project must not read a stale
// task set between write and re-sum.
type TaskService struct {
	db    *gorm.DB
	clock lifecycle.Clock
}

// NewTaskService creates a new TaskService
func NewTaskService(db *gorm.DB, clock lifecycle.Clock) *TaskService {
	return &TaskService{
		db:    db,
		clock: clock,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name           string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	AssignedUserID *uint64
}

// CreateTask creates a task under a project. Admins may create tasks
// anywhere; managers only under projects assigned to them. The parent
// project is resolved before the role check, so a missing project is
// ErrProjectNotFound for everyone.
func (s *TaskService) CreateTask(actor *models.User, projectID uint64, input CreateTaskInput) (*models.Task, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrEndBeforeStart
	}

	project, err := repository.NewProjectRepository(s.db).FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !policy.CanCreateTask(actor, project) {
		return nil, ErrAccessDenied
	}

	if input.AssignedUserID != nil {
		if _, err := repository.NewUserRepository(s.db).FindByID(*input.AssignedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssignedUserNotFound
			}
			return nil, fmt.Errorf("failed to verify assigned user: %w", err)
		}
	}

	task := &models.Task{
		ProjectID:      projectID,
		Name:           input.Name,
		Description:    input.Description,
		Status:         lifecycle.InitialStatus(input.StartDate, s.clock.Now()),
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		AssignedUserID: input.AssignedUserID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewTaskRepository(tx).Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		recomputeProjectHours(tx, task.ProjectID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return repository.NewTaskRepository(s.db).FindByID(task.ID, "AssignedUser")
}

// UpdateTaskStatus moves a task to a new status. On the first transition
// into COMPLETED the completion timestamp and hours figure are computed
// and frozen; any other transition leaves them untouched. The project
// hours aggregate is re-summed after every durable task write, not only
// completions.
func (s *TaskService) UpdateTaskStatus(taskID uint64, newStatus models.Status) (*models.Task, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	var task *models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)

		var err error
		task, err = taskRepo.FindByID(taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if change, ok := lifecycle.OnStatusChange(task.Status, newStatus, task.CompletedAt, task.StartDate, s.clock.Now()); ok {
			completedAt := change.CompletedAt
			task.CompletedAt = &completedAt
			task.HoursConsumed = change.HoursConsumed
		}
		task.Status = newStatus

		if err := taskRepo.Update(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		// The task's own derived fields are durable at this point; the
		// aggregate re-sum below reads them back from the store.
		recomputeProjectHours(tx, task.ProjectID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return repository.NewTaskRepository(s.db).FindByID(task.ID, "AssignedUser")
}

// recomputeProjectHours re-sums the hours of every task in the project and
// persists the total. Failures are logged and swallowed: the aggregate is
// best-effort and must never roll back the task write that triggered it.
func recomputeProjectHours(tx *gorm.DB, projectID uint64) {
	projectRepo := repository.NewProjectRepository(tx)

	if _, err := projectRepo.FindByID(projectID); err != nil {
		log.Printf("skipping hours recompute: project %d could not be loaded: %v", projectID, err)
		return
	}

	tasks, err := repository.NewTaskRepository(tx).ListByProject(projectID)
	if err != nil {
		log.Printf("skipping hours recompute for project %d: %v", projectID, err)
		return
	}

	if err := projectRepo.UpdateHoursConsumed(projectID, lifecycle.SumTaskHours(tasks)); err != nil {
		log.Printf("failed to persist hours recompute for project %d: %v", projectID, err)
	}
}
