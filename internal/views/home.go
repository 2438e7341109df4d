package views

import (
	"context"
	"fmt"

	"github.com/monocle-dev/taskhome/internal/format"
	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/slack-go/slack"
)

type HomeRequest struct {
	Mode     types.Mode
	ViewerID string
	TenantID string
	Query    string
}

// Home renders the home tab for one viewer in one mode. Unknown modes fall
// back to the task list.
func (b *Builder) Home(ctx context.Context, req HomeRequest) (slack.HomeTabViewRequest, error) {
	mode := req.Mode
	if mode != types.ModePeople && mode != types.ModePinned {
		mode = types.ModeMyTasks
	}

	blocks := format.NavBar(mode)
	room := viewBlockLimit - len(blocks)

	switch mode {
	case types.ModePeople:
		blocks = append(blocks, b.people(ctx, req.TenantID, req.ViewerID, req.Query, room)...)
	case types.ModePinned:
		blocks = append(blocks, b.pinned(ctx, req.TenantID, req.ViewerID, room)...)
	default:
		blocks = append(blocks, b.myTasks(ctx, req.TenantID, req.ViewerID, room)...)
	}

	return slack.HomeTabViewRequest{
		Type:       slack.VTHomeTab,
		Blocks:     slack.Blocks{BlockSet: blocks},
		CallbackID: fmt.Sprintf("home_%s", mode),
	}, nil
}
