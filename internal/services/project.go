package services

import (
	"context"
	"errors"

	"github.com/taskvault-dev/taskvault/internal/apperr"
	"github.com/taskvault-dev/taskvault/internal/models"
	"gorm.io/gorm"
)

// ProjectService owns projects. Every query is scoped to the calling
// user's id; a project that exists but belongs to someone else is
// indistinguishable from one that does not exist.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// ProjectWithTodoCount annotates a project with the number of todos it
// contains, for list views.
type ProjectWithTodoCount struct {
	models.Project
	TodoCount int64
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
}

func (s *ProjectService) Create(ctx context.Context, userID uint, name, description string) (*models.Project, error) {
	project := models.Project{
		Name:        name,
		Description: description,
		UserID:      userID,
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (s *ProjectService) List(ctx context.Context, userID uint) ([]ProjectWithTodoCount, error) {
	var projects []models.Project

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64)

	if len(projects) > 0 {
		ids := make([]uint, 0, len(projects))

		for _, project := range projects {
			ids = append(ids, project.ID)
		}

		var rows []struct {
			ProjectID uint
			Count     int64
		}

		err := s.db.WithContext(ctx).
			Model(&models.Todo{}).
			Select("project_id, count(*) as count").
			Where("project_id IN ?", ids).
			Group("project_id").
			Scan(&rows).Error

		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			counts[row.ProjectID] = row.Count
		}
	}

	result := make([]ProjectWithTodoCount, 0, len(projects))

	for _, project := range projects {
		result = append(result, ProjectWithTodoCount{
			Project:   project,
			TodoCount: counts[project.ID],
		})
	}

	return result, nil
}

// GetByID returns the project with its todos (newest first), each carrying
// its subtasks (oldest first).
func (s *ProjectService) GetByID(ctx context.Context, userID, projectID uint) (*models.Project, error) {
	var project models.Project

	err := s.db.WithContext(ctx).
		Preload("Todos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Todos.Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ? AND user_id = ?", projectID, userID).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}

	return &project, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID uint, input UpdateProjectInput) (*models.Project, error) {
	var project models.Project

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, userID).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperr.Validation("Project name must not be empty")
		}
		project.Name = *input.Name
	}

	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.db.WithContext(ctx).Save(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// Delete removes the project; its todos and their subtasks go with it via
// foreign-key cascade.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID uint) error {
	var project models.Project

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, userID).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Project not found")
		}
		return err
	}

	return s.db.WithContext(ctx).Delete(&project).Error
}

// ListTodos returns the project's todos (newest first) with their
// subtasks, after verifying the project belongs to the caller.
func (s *ProjectService) ListTodos(ctx context.Context, userID, projectID uint) (*models.Project, []models.Todo, error) {
	var project models.Project

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, userID).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("Project not found")
		}
		return nil, nil, err
	}

	var todos []models.Todo

	err = s.db.WithContext(ctx).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Order("created_at DESC").
		Find(&todos).Error

	if err != nil {
		return nil, nil, err
	}

	return &project, todos, nil
}
