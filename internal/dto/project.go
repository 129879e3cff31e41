package dto

import (
	"time"

	"github.com/mkarlin/project-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses. AssignedUser is the
// assignee's display name, null for unassigned tasks.
type TaskDTO struct {
	ID             uint64        `json:"id"`
	ProjectID      uint64        `json:"project_id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Status         models.Status `json:"status"`
	HoursConsumed  int64         `json:"hours_consumed"`
	AssignedUser   *string       `json:"assigned_user"`
	AssignedUserID *uint64       `json:"assigned_user_id"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	CompletedAt    *time.Time    `json:"completed_at"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ProjectDTO represents a project in API responses, tasks embedded.
// HoursConsumed is read-only: it is the stored aggregate, never accepted
// as input.
type ProjectDTO struct {
	ID             uint64        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Status         models.Status `json:"status"`
	HoursConsumed  int64         `json:"hours_consumed"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	AssignedUserID uint64        `json:"assigned_user_id"`
	Tasks          []TaskDTO     `json:"tasks"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		ProjectID:      task.ProjectID,
		Name:           task.Name,
		Description:    task.Description,
		Status:         task.Status,
		HoursConsumed:  task.HoursConsumed,
		AssignedUserID: task.AssignedUserID,
		StartDate:      task.StartDate.Format(time.DateOnly),
		EndDate:        task.EndDate.Format(time.DateOnly),
		CompletedAt:    task.CompletedAt,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	if task.AssignedUser != nil {
		name := task.AssignedUser.FullName()
		dto.AssignedUser = &name
	}

	return dto
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	tasks := make([]TaskDTO, len(project.Tasks))
	for i, t := range project.Tasks {
		tasks[i] = ToTaskDTO(t)
	}

	return ProjectDTO{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		Status:         project.Status,
		HoursConsumed:  project.HoursConsumed,
		StartDate:      project.StartDate.Format(time.DateOnly),
		EndDate:        project.EndDate.Format(time.DateOnly),
		AssignedUserID: project.AssignedUserID,
		Tasks:          tasks,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of Project models
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}
