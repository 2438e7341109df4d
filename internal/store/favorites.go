package store

import (
	"context"
	"fmt"

	"github.com/monocle-dev/taskhome/internal/models"
	"gorm.io/gorm/clause"
)

func (s *Store) ListFavoriteIDs(ctx context.Context, tenantID, managerID string) ([]string, error) {
	var ids []string

	err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("tenant_id = ? AND manager_id = ?", tenantID, managerID).
		Pluck("favorite_id", &ids).Error

	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return ids, nil
}

// AddFavorite pins favoriteID for managerID. Pinning twice is a no-op.
func (s *Store) AddFavorite(ctx context.Context, tenantID, managerID, favoriteID string) error {
	favorite := models.Favorite{
		TenantID:   tenantID,
		ManagerID:  managerID,
		FavoriteID: favoriteID,
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error; err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	return nil
}

// RemoveFavorite unpins favoriteID. Removing a missing pin is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, tenantID, managerID, favoriteID string) error {
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND manager_id = ? AND favorite_id = ?", tenantID, managerID, favoriteID).
		Delete(&models.Favorite{}).Error

	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	return nil
}
