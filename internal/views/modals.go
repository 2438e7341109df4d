package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/taskhome/internal/format"
	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/nav"
	"github.com/monocle-dev/taskhome/internal/store"
	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func modal(callbackID, title string, blocks []slack.Block) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: callbackID,
		Title:      plain(title),
		Close:      plain("Close"),
		Blocks:     slack.Blocks{BlockSet: blocks},
	}
}

// PersonTasks renders another user's active and completed tasks. Deleted
// tasks are not shown to colleagues.
func (b *Builder) PersonTasks(ctx context.Context, tenantID, targetID string) (slack.ModalViewRequest, error) {
	name := "<@" + targetID + ">"
	user, err := b.store.GetUser(ctx, tenantID, targetID)
	switch {
	case err == nil && user.Name != "":
		name = user.Name
	case err != nil && !errors.Is(err, store.ErrNotFound):
		b.logger.Warn("Directory lookup failed", zap.String("user_id", targetID), zap.Error(err))
	}

	buckets := b.loadTasks(ctx, tenantID, targetID)

	blocks := []slack.Block{
		header(fmt.Sprintf("Tasks for %s", name)),
		section("*📝 Active*"),
	}

	active := make([][]slack.Block, 0, len(buckets.active))
	for _, task := range buckets.active {
		created := task.CreatedAt
		row := []slack.Block{section(fmt.Sprintf("*%s*\nCreated: %s", escape(task.Title), format.Date(&created)))}
		if n := buckets.updates[task.ID]; n > 0 {
			row = append(row, slack.NewActionBlock("active_"+task.ID, viewUpdatesButton(task.ID, n)))
		}
		active = append(active, row)
	}

	// a divider and the completed heading follow the active list
	left := viewBlockLimit - len(blocks) - 2
	listed := listBlocks(active, left-1, "No active tasks.", "active tasks")
	blocks = append(blocks, listed...)
	left -= len(listed)

	blocks = append(blocks, slack.NewDividerBlock(), section("*✅ Completed*"))
	blocks = append(blocks, listBlocks(completedRows(buckets), left, "No completed tasks.", "completed tasks")...)

	view := modal(types.CallbackPersonTasks, "Tasks", blocks)
	view.PrivateMetadata = nav.Metadata{TargetID: targetID, TenantID: tenantID}.Encode()
	return view, nil
}

// Updates renders the update list of one task. When navigation says the list
// was reached from a person's tasks, a back control leads there again.
func (b *Builder) Updates(ctx context.Context, tenantID, taskID string, nc nav.Context) (slack.ModalViewRequest, error) {
	var (
		task    *models.Task
		updates []models.Update
		g       errgroup.Group
	)

	g.Go(func() error {
		var err error
		task, err = b.store.GetTask(ctx, tenantID, taskID)
		if err != nil {
			return fmt.Errorf("load task %s: %w", taskID, err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := b.store.ListUpdatesByTask(ctx, tenantID, taskID)
		updates = listOrEmpty(b, "task updates", rows, err)
		return nil
	})

	if err := g.Wait(); err != nil {
		return slack.ModalViewRequest{}, err
	}

	var blocks []slack.Block
	metadata := nav.Metadata{TargetID: taskID, TenantID: tenantID}

	if nc.CanGoBack() {
		metadata = nav.Metadata{TargetID: nc.OriginID, TenantID: tenantID}
		blocks = append(blocks, slack.NewActionBlock("back",
			button(types.ActionBackToPersonTasks, metadata.Encode(), "← Back"),
		))
	}

	created := task.CreatedAt
	blocks = append(blocks,
		header(task.Title),
		slack.NewContextBlock("", mrkdwn(fmt.Sprintf("Status: %s · Created %s", task.Status, format.Date(&created)))),
		slack.NewDividerBlock(),
	)

	rows := make([][]slack.Block, 0, len(updates))
	for _, u := range updates {
		rows = append(rows, []slack.Block{
			section(escape(u.Content)),
			slack.NewContextBlock("", mrkdwn("🕒 "+format.DateTime(u.CreatedAt))),
		})
	}
	blocks = append(blocks, listBlocks(rows, viewBlockLimit-len(blocks), "No updates yet.", "updates")...)

	view := modal(types.CallbackTaskUpdates, "Task Updates", blocks)
	view.PrivateMetadata = metadata.Encode()
	return view, nil
}

func (b *Builder) AddTaskForm() slack.ModalViewRequest {
	input := slack.NewPlainTextInputBlockElement(plain("What needs to be done?"), types.InputTaskTitle)
	input.MaxLength = headerTextLimit

	view := modal(types.CallbackAddTask, "New Task", []slack.Block{
		slack.NewInputBlock(types.BlockTaskTitle, plain("Title"), nil, input),
	})
	view.Submit = plain("Add")
	return view
}

// UpdateProgressForm carries the task id in private metadata so the
// submission can be attached to it.
func (b *Builder) UpdateProgressForm(tenantID, taskID string) slack.ModalViewRequest {
	input := slack.NewPlainTextInputBlockElement(plain("What changed?"), types.InputUpdateContent)
	input.Multiline = true
	input.MaxLength = sectionTextLimit

	view := modal(types.CallbackUpdateProgress, "Add Update", []slack.Block{
		slack.NewInputBlock(types.BlockUpdateContent, plain("Progress"), nil, input),
	})
	view.Submit = plain("Save")
	view.PrivateMetadata = nav.Metadata{TargetID: taskID, TenantID: tenantID}.Encode()
	return view
}
