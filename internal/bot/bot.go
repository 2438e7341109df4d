// Package bot maps actions to handlers. A handler writes at most one row and
// then re-renders the home tab or a modal.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/platform"
	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/monocle-dev/taskhome/internal/views"
	"go.uber.org/zap"
)

type Store interface {
	views.Reader

	CreateTask(ctx context.Context, task *models.Task) error
	CompleteTask(ctx context.Context, tenantID, userID, taskID string, at time.Time) error
	DeleteTask(ctx context.Context, tenantID, userID, taskID string, at time.Time) error
	CreateUpdate(ctx context.Context, update *models.Update) error
	AddFavorite(ctx context.Context, tenantID, managerID, favoriteID string) error
	RemoveFavorite(ctx context.Context, tenantID, managerID, favoriteID string) error
}

// DirectorySyncer starts a roster sync without waiting for it.
type DirectorySyncer interface {
	Trigger(tenantID string)
}

// InstallationRemover forgets a workspace once the app is uninstalled.
type InstallationRemover interface {
	DeleteInstallation(ctx context.Context, tenantID string) error
}

type HandlerFunc func(ctx context.Context, req Request) error

type Config struct {
	MultiTenant   bool
	Installations InstallationRemover // multi-tenant only
	Now           func() time.Time
}

type Bot struct {
	store       Store
	views       *views.Builder
	resolver    platform.Resolver
	directory   DirectorySyncer
	installs    InstallationRemover
	logger      *zap.Logger
	multiTenant bool
	now         func() time.Time
	handlers    map[string]HandlerFunc
}

func New(store Store, resolver platform.Resolver, directory DirectorySyncer, logger *zap.Logger, cfg Config) *Bot {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	b := &Bot{
		store:       store,
		views:       views.NewBuilder(store, logger),
		resolver:    resolver,
		directory:   directory,
		installs:    cfg.Installations,
		logger:      logger,
		multiTenant: cfg.MultiTenant,
		now:         now,
	}

	b.handlers = map[string]HandlerFunc{
		types.ActionNavMyTasks:         b.navigate(types.ModeMyTasks),
		types.ActionNavPeople:          b.navigate(types.ModePeople),
		types.ActionNavPinned:          b.navigate(types.ModePinned),
		types.ActionOpenAddTask:        b.openAddTask,
		types.CallbackAddTask:          b.addTask,
		types.ActionOpenUpdateProgress: b.openUpdateProgress,
		types.CallbackUpdateProgress:   b.updateProgress,
		types.ActionCompleteTask:       b.completeTask,
		types.ActionDeleteTask:         b.deleteTask,
		types.ActionPinEmployee:        b.pinEmployee,
		types.ActionUnpinEmployee:      b.unpinEmployee,
		types.ActionPeopleSearch:       b.peopleSearch,
		types.ActionViewUpdates:        b.viewUpdates,
		types.ActionViewPersonTasks:    b.viewPersonTasks,
		types.ActionViewPinnedTasks:    b.viewPersonTasks,
		types.ActionBackToPersonTasks:  b.backToPersonTasks,
	}

	return b
}

// Dispatch acknowledges the request before anything else happens, then runs
// the handler registered for its action. Unknown actions are acknowledged and
// dropped.
func (b *Bot) Dispatch(ctx context.Context, req Request, ack func()) error {
	if ack != nil {
		ack()
	}

	req.TenantID = b.tenant(req.TenantID, "")

	handler, ok := b.handlers[req.ActionID]
	if !ok {
		b.logger.Debug("No handler for action", zap.String("action_id", req.ActionID))
		return nil
	}

	if err := handler(ctx, req); err != nil {
		return fmt.Errorf("%s: %w", req.ActionID, err)
	}

	return nil
}

// Handles reports whether an action id has a handler.
func (b *Bot) Handles(actionID string) bool {
	_, ok := b.handlers[actionID]
	return ok
}

// tenant picks the tenant a request acts on. Single-tenant deployments never
// scope by tenant; otherwise a tenant carried in view state wins over the
// team of the payload.
func (b *Bot) tenant(fromRequest, carried string) string {
	if !b.multiTenant {
		return ""
	}
	if carried != "" {
		return carried
	}
	return fromRequest
}

func (b *Bot) client(ctx context.Context, tenantID string) (platform.Client, error) {
	client, err := b.resolver.Client(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve client for tenant %q: %w", tenantID, err)
	}
	return client, nil
}
