package store

import (
	"context"
	"fmt"

	"github.com/monocle-dev/taskhome/internal/models"
	"gorm.io/gorm/clause"
)

// ListUsers returns the tenant's directory ordered by name.
func (s *Store) ListUsers(ctx context.Context, tenantID string) ([]models.User, error) {
	var users []models.User

	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("name asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (s *Store) ListUsersByIDs(ctx context.Context, tenantID string, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []models.User

	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("name asc").
		Find(&users).Error

	if err != nil {
		return nil, fmt.Errorf("list users by id: %w", err)
	}

	return users, nil
}

func (s *Store) GetUser(ctx context.Context, tenantID, userID string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, userID).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

// UpsertUsers inserts or refreshes directory entries keyed on (id, tenant_id).
func (s *Store) UpsertUsers(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "updated_at"}),
	}).CreateInBatches(users, 200).Error

	if err != nil {
		return fmt.Errorf("upsert users: %w", err)
	}

	return nil
}
