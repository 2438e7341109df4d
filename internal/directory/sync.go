// Package directory mirrors the workspace member list into the users table.
package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/platform"
	"github.com/monocle-dev/taskhome/internal/scheduler"
	"go.uber.org/zap"
)

type UserWriter interface {
	UpsertUsers(ctx context.Context, users []models.User) error
}

type Syncer struct {
	resolver  platform.Resolver
	store     UserWriter
	scheduler *scheduler.Scheduler
	logger    *zap.Logger
}

func NewSyncer(resolver platform.Resolver, store UserWriter, sched *scheduler.Scheduler, logger *zap.Logger) *Syncer {
	return &Syncer{
		resolver:  resolver,
		store:     store,
		scheduler: sched,
		logger:    logger,
	}
}

// Sync fetches the roster of a tenant and upserts every human, active member.
func (s *Syncer) Sync(ctx context.Context, tenantID string) (int, error) {
	client, err := s.resolver.Client(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("resolve client: %w", err)
	}

	members, err := client.ListMembers(ctx, tenantID)
	if err != nil {
		return 0, err
	}

	users := make([]models.User, 0, len(members))
	for _, m := range members {
		if m.IsBot || m.Deleted {
			continue
		}
		users = append(users, models.User{
			ID:       m.ID,
			TenantID: tenantID,
			Name:     m.Name,
			Email:    m.Email,
		})
	}

	if err := s.store.UpsertUsers(ctx, users); err != nil {
		return 0, err
	}

	return len(users), nil
}

// Trigger starts a sync in the background and returns at once. A sync already
// running for the tenant absorbs the trigger. Failures only reach the log.
func (s *Syncer) Trigger(tenantID string) {
	started := s.scheduler.Go("directory:"+tenantID, func(ctx context.Context) error {
		n, err := s.Sync(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("directory sync for tenant %q: %w", tenantID, err)
		}

		s.logger.Info("Directory synced", zap.String("tenant_id", tenantID), zap.Int("users", n))
		return nil
	})

	if !started {
		s.logger.Debug("Directory sync already running", zap.String("tenant_id", tenantID))
	}
}

// TenantSource lists the tenants a periodic sync walks through.
type TenantSource func(ctx context.Context) ([]string, error)

// Schedule syncs every tenant now and then once per interval. One tenant
// failing does not stop the others.
func (s *Syncer) Schedule(interval time.Duration, tenants TenantSource) {
	s.scheduler.Every("directory:periodic", interval, func(ctx context.Context) error {
		ids, err := tenants(ctx)
		if err != nil {
			return fmt.Errorf("list tenants: %w", err)
		}

		var errs []error
		for _, tenantID := range ids {
			if _, err := s.Sync(ctx, tenantID); err != nil {
				errs = append(errs, fmt.Errorf("tenant %q: %w", tenantID, err))
			}
		}
		return errors.Join(errs...)
	})
}
