package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/nav"
	"github.com/monocle-dev/taskhome/internal/store"
	"github.com/monocle-dev/taskhome/internal/types"
	"go.uber.org/zap"
)

func (b *Bot) openAddTask(ctx context.Context, req Request) error {
	client, err := b.client(ctx, req.TenantID)
	if err != nil {
		return err
	}

	return client.OpenModal(ctx, req.TriggerID, b.views.AddTaskForm())
}

func (b *Bot) addTask(ctx context.Context, req Request) error {
	title := strings.TrimSpace(req.Input(types.BlockTaskTitle, types.InputTaskTitle))

	if title == "" {
		b.logger.Info("Ignoring empty task title", zap.String("user_id", req.UserID))
	} else {
		task := models.Task{
			TenantID:  req.TenantID,
			UserID:    req.UserID,
			Title:     title,
			Status:    models.TaskActive,
			CreatedAt: b.now(),
		}

		if err := b.store.CreateTask(ctx, &task); err != nil {
			return err
		}
	}

	return b.publishHome(ctx, req.UserID, req.TenantID, types.ModeMyTasks, "")
}

func (b *Bot) openUpdateProgress(ctx context.Context, req Request) error {
	client, err := b.client(ctx, req.TenantID)
	if err != nil {
		return err
	}

	return client.OpenModal(ctx, req.TriggerID, b.views.UpdateProgressForm(req.TenantID, req.Value))
}

// updateProgress attaches the submitted note to the task named in the form's
// private metadata. Only the task's owner can add to it.
func (b *Bot) updateProgress(ctx context.Context, req Request) error {
	meta := nav.ParseMetadata(req.Metadata)
	tenantID := b.tenant(req.TenantID, meta.TenantID)
	content := strings.TrimSpace(req.Input(types.BlockUpdateContent, types.InputUpdateContent))

	task, err := b.store.GetTask(ctx, tenantID, meta.TargetID)
	if err != nil {
		return err
	}

	switch {
	case task.UserID != req.UserID:
		b.logger.Warn("Refusing update on a task owned by someone else", zap.String("user_id", req.UserID), zap.String("task_id", task.ID))
	case content == "":
		b.logger.Info("Ignoring empty update", zap.String("task_id", task.ID))
	default:
		update := models.Update{
			TaskID:    task.ID,
			TenantID:  tenantID,
			UserID:    req.UserID,
			Content:   content,
			CreatedAt: b.now(),
		}
		if err := b.store.CreateUpdate(ctx, &update); err != nil {
			return err
		}
	}

	return b.publishHome(ctx, req.UserID, tenantID, types.ModeMyTasks, "")
}

func (b *Bot) completeTask(ctx context.Context, req Request) error {
	if err := b.staleOr(b.store.CompleteTask(ctx, req.TenantID, req.UserID, req.Value, b.now()), req); err != nil {
		return err
	}

	return b.publishHome(ctx, req.UserID, req.TenantID, types.ModeMyTasks, "")
}

func (b *Bot) deleteTask(ctx context.Context, req Request) error {
	if err := b.staleOr(b.store.DeleteTask(ctx, req.TenantID, req.UserID, req.Value, b.now()), req); err != nil {
		return err
	}

	return b.publishHome(ctx, req.UserID, req.TenantID, types.ModeMyTasks, "")
}

// staleOr absorbs clicks on tasks that are no longer active (a double click,
// or a home tab rendered before another change) and passes other errors on.
func (b *Bot) staleOr(err error, req Request) error {
	if errors.Is(err, store.ErrNotFound) {
		b.logger.Info("Stale task action", zap.String("action_id", req.ActionID), zap.String("task_id", req.Value))
		return nil
	}
	return err
}
