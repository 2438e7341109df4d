// Package views assembles home tab and modal layouts from store rows. Builders
// only read; the action that triggered a render owns any mutation.
package views

import (
	"context"

	"github.com/monocle-dev/taskhome/internal/models"
	"go.uber.org/zap"
)

// Reader is the read side of the store the builders need.
type Reader interface {
	ListTasks(ctx context.Context, tenantID, userID string) ([]models.Task, error)
	GetTask(ctx context.Context, tenantID, taskID string) (*models.Task, error)
	ListUpdatesByUser(ctx context.Context, tenantID, userID string) ([]models.Update, error)
	ListUpdatesByTask(ctx context.Context, tenantID, taskID string) ([]models.Update, error)
	ListUsers(ctx context.Context, tenantID string) ([]models.User, error)
	ListUsersByIDs(ctx context.Context, tenantID string, ids []string) ([]models.User, error)
	GetUser(ctx context.Context, tenantID, userID string) (*models.User, error)
	ListFavoriteIDs(ctx context.Context, tenantID, managerID string) ([]string, error)
}

type Builder struct {
	store  Reader
	logger *zap.Logger
}

func NewBuilder(store Reader, logger *zap.Logger) *Builder {
	return &Builder{store: store, logger: logger}
}

// listOrEmpty logs a failed listing query and degrades it to no rows.
func listOrEmpty[T any](b *Builder, what string, rows []T, err error) []T {
	if err != nil {
		b.logger.Warn("Listing query failed, rendering empty", zap.String("query", what), zap.Error(err))
		return nil
	}
	return rows
}
