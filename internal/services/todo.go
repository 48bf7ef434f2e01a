package services

import (
	"context"
	"errors"
	"time"

	"github.com/taskvault-dev/taskvault/internal/apperr"
	"github.com/taskvault-dev/taskvault/internal/models"
	"gorm.io/gorm"
)

// TodoService owns todos. A todo belongs to exactly one user and
// optionally to one of that user's projects; linking a todo to another
// user's project is rejected before anything is written.
type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

type CreateTodoInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Note        string
	ProjectID   *uint
}

type UpdateTodoInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Note        *string

	// SetProject marks the project link as part of the update: with a nil
	// ProjectID it detaches the todo, otherwise it relinks it.
	SetProject bool
	ProjectID  *uint
}

func (s *TodoService) Create(ctx context.Context, userID uint, input CreateTodoInput) (*models.Todo, error) {
	if input.ProjectID != nil {
		if err := s.checkProject(ctx, userID, *input.ProjectID); err != nil {
			return nil, err
		}
	}

	todo := models.Todo{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Note:        input.Note,
		ProjectID:   input.ProjectID,
		UserID:      userID,
	}

	if err := s.db.WithContext(ctx).Create(&todo).Error; err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID, todo.ID)
}

func (s *TodoService) List(ctx context.Context, userID uint) ([]models.Todo, error) {
	var todos []models.Todo

	err := s.db.WithContext(ctx).
		Preload("Project").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&todos).Error

	if err != nil {
		return nil, err
	}

	return todos, nil
}

func (s *TodoService) GetByID(ctx context.Context, userID, todoID uint) (*models.Todo, error) {
	var todo models.Todo

	err := s.db.WithContext(ctx).
		Preload("Project").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ? AND user_id = ?", todoID, userID).
		First(&todo).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Todo not found")
		}
		return nil, err
	}

	return &todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, todoID uint, input UpdateTodoInput) (*models.Todo, error) {
	var todo models.Todo

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", todoID, userID).
		First(&todo).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Todo not found")
		}
		return nil, err
	}

	// Re-validate the project link before any write.
	if input.SetProject && input.ProjectID != nil {
		if err := s.checkProject(ctx, userID, *input.ProjectID); err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperr.Validation("Todo title must not be empty")
		}
		todo.Title = *input.Title
	}

	if input.Description != nil {
		todo.Description = *input.Description
	}

	if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}

	if input.Note != nil {
		todo.Note = *input.Note
	}

	if input.SetProject {
		todo.ProjectID = input.ProjectID
	}

	if err := s.db.WithContext(ctx).Save(&todo).Error; err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID, todo.ID)
}

// ToggleComplete flips the completed flag and returns the todo in its new
// state.
func (s *TodoService) ToggleComplete(ctx context.Context, userID, todoID uint) (*models.Todo, error) {
	var todo models.Todo

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", todoID, userID).
		First(&todo).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Todo not found")
		}
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Model(&todo).
		Update("completed", !todo.Completed).Error

	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID, todo.ID)
}

// Delete removes the todo; its subtasks go with it via foreign-key
// cascade.
func (s *TodoService) Delete(ctx context.Context, userID, todoID uint) error {
	var todo models.Todo

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", todoID, userID).
		First(&todo).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Todo not found")
		}
		return err
	}

	return s.db.WithContext(ctx).Delete(&todo).Error
}

func (s *TodoService) checkProject(ctx context.Context, userID, projectID uint) error {
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

	return nil
}
