package bot

import (
	"context"

	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/monocle-dev/taskhome/internal/views"
)

// HomeOpened kicks off a detached directory sync and publishes the task list.
// The sync never delays the render.
func (b *Bot) HomeOpened(ctx context.Context, userID, tenantID string) error {
	tenantID = b.tenant(tenantID, "")

	if b.directory != nil {
		b.directory.Trigger(tenantID)
	}

	return b.publishHome(ctx, userID, tenantID, types.ModeMyTasks, "")
}

func (b *Bot) publishHome(ctx context.Context, userID, tenantID string, mode types.Mode, query string) error {
	client, err := b.client(ctx, tenantID)
	if err != nil {
		return err
	}

	view, err := b.views.Home(ctx, views.HomeRequest{
		Mode:     mode,
		ViewerID: userID,
		TenantID: tenantID,
		Query:    query,
	})
	if err != nil {
		return err
	}

	return client.PublishHome(ctx, userID, view)
}

func (b *Bot) navigate(mode types.Mode) HandlerFunc {
	return func(ctx context.Context, req Request) error {
		return b.publishHome(ctx, req.UserID, req.TenantID, mode, "")
	}
}
