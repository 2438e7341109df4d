package bot

import (
	"context"

	"github.com/monocle-dev/taskhome/internal/nav"
	"github.com/monocle-dev/taskhome/internal/types"
)

// viewUpdates opens the update list from the home tab. From inside a modal it
// replaces that modal instead of stacking a new one, remembering the person
// whose tasks were on screen so Back can return there.
func (b *Bot) viewUpdates(ctx context.Context, req Request) error {
	client, err := b.client(ctx, req.TenantID)
	if err != nil {
		return err
	}

	if !req.InModal {
		view, err := b.views.Updates(ctx, req.TenantID, req.Value, nav.Context{Current: nav.OriginTaskUpdates, Origin: nav.OriginHome})
		if err != nil {
			return err
		}
		return client.OpenModal(ctx, req.TriggerID, view)
	}

	carried := nav.ParseMetadata(req.Metadata)
	tenantID := b.tenant(req.TenantID, carried.TenantID)

	nc := nav.Context{Current: nav.OriginTaskUpdates}
	if req.ViewCallbackID == types.CallbackPersonTasks {
		nc.Origin = nav.OriginPersonTasks
		nc.OriginID = carried.TargetID
	}

	view, err := b.views.Updates(ctx, tenantID, req.Value, nc)
	if err != nil {
		return err
	}

	return client.UpdateModal(ctx, req.ViewID, view)
}

func (b *Bot) viewPersonTasks(ctx context.Context, req Request) error {
	client, err := b.client(ctx, req.TenantID)
	if err != nil {
		return err
	}

	view, err := b.views.PersonTasks(ctx, req.TenantID, req.Value)
	if err != nil {
		return err
	}

	return client.OpenModal(ctx, req.TriggerID, view)
}

// backToPersonTasks re-renders the person's task list into the current modal.
// The button value carries the person (and tenant) to return to.
func (b *Bot) backToPersonTasks(ctx context.Context, req Request) error {
	target := nav.ParseMetadata(req.Value)
	tenantID := b.tenant(req.TenantID, target.TenantID)

	client, err := b.client(ctx, tenantID)
	if err != nil {
		return err
	}

	view, err := b.views.PersonTasks(ctx, tenantID, target.TargetID)
	if err != nil {
		return err
	}

	return client.UpdateModal(ctx, req.ViewID, view)
}
