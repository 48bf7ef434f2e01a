package services

import (
	"context"
	"errors"
	"time"

	"github.com/taskvault-dev/taskvault/internal/apperr"
	"github.com/taskvault-dev/taskvault/internal/models"
	"gorm.io/gorm"
)

// SubtaskService owns subtasks. A subtask belongs to exactly one user and
// to one of that user's todos.
type SubtaskService struct {
	db *gorm.DB
}

func NewSubtaskService(db *gorm.DB) *SubtaskService {
	return &SubtaskService{db: db}
}

type CreateSubtaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

func (s *SubtaskService) Create(ctx context.Context, userID, todoID uint, input CreateSubtaskInput) (*models.Subtask, error) {
	if err := s.checkTodo(ctx, userID, todoID); err != nil {
		return nil, err
	}

	subtask := models.Subtask{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		TodoID:      todoID,
		UserID:      userID,
	}

	if err := s.db.WithContext(ctx).Create(&subtask).Error; err != nil {
		return nil, err
	}

	return &subtask, nil
}

func (s *SubtaskService) List(ctx context.Context, userID, todoID uint) ([]models.Subtask, error) {
	if err := s.checkTodo(ctx, userID, todoID); err != nil {
		return nil, err
	}

	var subtasks []models.Subtask

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND todo_id = ?", userID, todoID).
		Order("created_at ASC").
		Find(&subtasks).Error

	if err != nil {
		return nil, err
	}

	return subtasks, nil
}

// ToggleComplete flips the completed flag and returns the subtask in its
// new state.
func (s *SubtaskService) ToggleComplete(ctx context.Context, userID, subtaskID uint) (*models.Subtask, error) {
	var subtask models.Subtask

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", subtaskID, userID).
		First(&subtask).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Subtask not found")
		}
		return nil, err
	}

	completed := !subtask.Completed

	err = s.db.WithContext(ctx).
		Model(&subtask).
		Update("completed", completed).Error

	if err != nil {
		return nil, err
	}

	subtask.Completed = completed
	return &subtask, nil
}

func (s *SubtaskService) Delete(ctx context.Context, userID, subtaskID uint) error {
	var subtask models.Subtask

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", subtaskID, userID).
		First(&subtask).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Subtask not found")
		}
		return err
	}

	return s.db.WithContext(ctx).Delete(&subtask).Error
}

func (s *SubtaskService) checkTodo(ctx context.Context, userID, todoID uint) error {
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

	return nil
}
