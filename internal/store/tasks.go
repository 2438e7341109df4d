package store

import (
	"context"
	"fmt"
	"time"

	"github.com/monocle-dev/taskhome/internal/models"
)

// ListTasks returns every task owned by userID, newest first.
func (s *Store) ListTasks(ctx context.Context, tenantID, userID string) ([]models.Task, error) {
	var tasks []models.Task

	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at desc").
		Find(&tasks).Error

	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (s *Store) GetTask(ctx context.Context, tenantID, taskID string) (*models.Task, error) {
	var task models.Task

	if err := s.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, taskID).First(&task).Error; err != nil {
		return nil, translate(err)
	}

	return &task, nil
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// CompleteTask moves an active task owned by userID to completed.
func (s *Store) CompleteTask(ctx context.Context, tenantID, userID, taskID string, at time.Time) error {
	return s.closeTask(ctx, tenantID, userID, taskID, map[string]interface{}{
		"status":       models.TaskCompleted,
		"completed_at": at,
	})
}

// DeleteTask moves an active task owned by userID to deleted. The row is kept.
func (s *Store) DeleteTask(ctx context.Context, tenantID, userID, taskID string, at time.Time) error {
	return s.closeTask(ctx, tenantID, userID, taskID, map[string]interface{}{
		"status":     models.TaskDeleted,
		"deleted_at": at,
	})
}

func (s *Store) closeTask(ctx context.Context, tenantID, userID, taskID string, changes map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("tenant_id = ? AND user_id = ? AND id = ? AND status = ?", tenantID, userID, taskID, models.TaskActive).
		Updates(changes)

	if result.Error != nil {
		return fmt.Errorf("update task %s: %w", taskID, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
