package repository

import (
	"github.com/mkarlin/project-tracker-api/internal/database"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List retrieves projects with role scoping and pagination, newest first
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{})

	if filter.AssignedUserID != nil {
		query = query.Where("projects.assigned_user_id = ?", *filter.AssignedUserID)
	}
	if filter.TaskAssigneeID != nil {
		taskSubQuery := r.db.Model(&models.Task{}).
			Select("1").
			Where("tasks.project_id = projects.id").
			Where("tasks.assigned_user_id = ?", *filter.TaskAssigneeID)
		query = query.Where("EXISTS (?)", taskSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("projects.created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Tasks").Preload("Tasks.AssignedUser").Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// UpdateHoursConsumed persists a recomputed hours aggregate
func (r *GormProjectRepository) UpdateHoursConsumed(id uint64, hours int64) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Update("hours_consumed", hours).Error
}
