package bot

import (
	"context"

	"github.com/monocle-dev/taskhome/internal/nav"
	"github.com/monocle-dev/taskhome/internal/types"
)

func (b *Bot) pinEmployee(ctx context.Context, req Request) error {
	target := nav.ParseButtonValue(req.Value)

	if err := b.store.AddFavorite(ctx, req.TenantID, req.UserID, target.TargetID); err != nil {
		return err
	}

	return b.publishHome(ctx, req.UserID, req.TenantID, types.ModePeople, "")
}

// unpinEmployee returns to the view that rendered the button: the pinned list
// or, by default, the people list.
func (b *Bot) unpinEmployee(ctx context.Context, req Request) error {
	target := nav.ParseButtonValue(req.Value)

	if err := b.store.RemoveFavorite(ctx, req.TenantID, req.UserID, target.TargetID); err != nil {
		return err
	}

	mode := types.ModePeople
	if target.Origin == nav.OriginPinned {
		mode = types.ModePinned
	}

	return b.publishHome(ctx, req.UserID, req.TenantID, mode, "")
}

func (b *Bot) peopleSearch(ctx context.Context, req Request) error {
	return b.publishHome(ctx, req.UserID, req.TenantID, types.ModePeople, req.Value)
}
