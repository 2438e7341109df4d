package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/taskhome/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveInstallation stores or wholesale replaces the installation of a tenant.
func (s *Store) SaveInstallation(ctx context.Context, installation *models.Installation) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(installation).Error; err != nil {
		return fmt.Errorf("save installation: %w", err)
	}

	return nil
}

func (s *Store) GetInstallation(ctx context.Context, tenantID string) (*models.Installation, error) {
	var installation models.Installation

	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&installation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tenant %s", ErrInstallationNotFound, tenantID)
		}
		return nil, fmt.Errorf("get installation: %w", err)
	}

	return &installation, nil
}

func (s *Store) DeleteInstallation(ctx context.Context, tenantID string) error {
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Delete(&models.Installation{}).Error; err != nil {
		return fmt.Errorf("delete installation: %w", err)
	}

	return nil
}

func (s *Store) ListInstallations(ctx context.Context) ([]models.Installation, error) {
	var installations []models.Installation

	if err := s.db.WithContext(ctx).Order("installed_at asc").Find(&installations).Error; err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}

	return installations, nil
}
