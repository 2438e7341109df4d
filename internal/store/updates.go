package store

import (
	"context"
	"fmt"

	"github.com/monocle-dev/taskhome/internal/models"
)

func (s *Store) ListUpdatesByUser(ctx context.Context, tenantID, userID string) ([]models.Update, error) {
	var updates []models.Update

	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Find(&updates).Error

	if err != nil {
		return nil, fmt.Errorf("list updates: %w", err)
	}

	return updates, nil
}

// ListUpdatesByTask returns the updates of one task, newest first.
func (s *Store) ListUpdatesByTask(ctx context.Context, tenantID, taskID string) ([]models.Update, error) {
	var updates []models.Update

	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND task_id = ?", tenantID, taskID).
		Order("created_at desc").
		Find(&updates).Error

	if err != nil {
		return nil, fmt.Errorf("list task updates: %w", err)
	}

	return updates, nil
}

func (s *Store) CreateUpdate(ctx context.Context, update *models.Update) error {
	if err := s.db.WithContext(ctx).Create(update).Error; err != nil {
		return fmt.Errorf("create update: %w", err)
	}

	return nil
}
