package views

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/monocle-dev/taskhome/internal/format"
	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

type taskBuckets struct {
	active    []models.Task
	completed []models.Task
	deleted   []models.Task
	updates   map[string]int
}

// loadTasks fetches a user's tasks and updates in parallel and partitions the
// tasks by status. Active tasks keep fetch order (newest created first);
// completed and deleted are re-sorted on their own timestamps.
func (b *Builder) loadTasks(ctx context.Context, tenantID, userID string) taskBuckets {
	var (
		tasks   []models.Task
		updates []models.Update
		g       errgroup.Group
	)

	g.Go(func() error {
		rows, err := b.store.ListTasks(ctx, tenantID, userID)
		tasks = listOrEmpty(b, "tasks", rows, err)
		return nil
	})

	g.Go(func() error {
		rows, err := b.store.ListUpdatesByUser(ctx, tenantID, userID)
		updates = listOrEmpty(b, "updates", rows, err)
		return nil
	})

	_ = g.Wait()

	return partition(tasks, updates)
}

func partition(tasks []models.Task, updates []models.Update) taskBuckets {
	buckets := taskBuckets{updates: make(map[string]int, len(updates))}

	for _, u := range updates {
		buckets.updates[u.TaskID]++
	}

	for _, task := range tasks {
		switch task.Status {
		case models.TaskCompleted:
			buckets.completed = append(buckets.completed, task)
		case models.TaskDeleted:
			buckets.deleted = append(buckets.deleted, task)
		default:
			buckets.active = append(buckets.active, task)
		}
	}

	sortDesc(buckets.completed, func(t models.Task) *time.Time { return t.CompletedAt })
	sortDesc(buckets.deleted, func(t models.Task) *time.Time { return t.DeletedAt })

	return buckets
}

// sortDesc orders tasks newest first on the given timestamp; missing stamps sink.
func sortDesc(tasks []models.Task, stamp func(models.Task) *time.Time) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := stamp(tasks[i]), stamp(tasks[j])
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
}

func viewUpdatesButton(taskID string, count int) *slack.ButtonBlockElement {
	return button(types.ActionViewUpdates, taskID, fmt.Sprintf("View Updates (%d)", count))
}

// myTasks renders the viewer's three buckets in at most room blocks. Active
// tasks are budgeted first; completed and deleted keep at least one line each.
func (b *Builder) myTasks(ctx context.Context, tenantID, viewerID string, room int) []slack.Block {
	buckets := b.loadTasks(ctx, tenantID, viewerID)

	blocks := []slack.Block{
		slack.NewActionBlock("task_toolbar",
			button(types.ActionOpenAddTask, "new", "➕ Add Task").WithStyle(slack.StylePrimary),
		),
		header("📝 Active Tasks"),
	}

	// two dividers and two headers follow the active list
	left := room - len(blocks) - 4

	active := make([][]slack.Block, 0, len(buckets.active))
	for _, task := range buckets.active {
		created := task.CreatedAt

		var controls []slack.BlockElement
		if n := buckets.updates[task.ID]; n > 0 {
			controls = append(controls, viewUpdatesButton(task.ID, n))
		}
		controls = append(controls,
			button(types.ActionOpenUpdateProgress, task.ID, "✏️ Add Update"),
			button(types.ActionCompleteTask, task.ID, "✅ Complete").WithStyle(slack.StylePrimary),
			button(types.ActionDeleteTask, task.ID, "🗑️ Delete").WithStyle(slack.StyleDanger),
		)

		active = append(active, []slack.Block{
			section(fmt.Sprintf("*%s*\nCreated: %s", escape(task.Title), format.Date(&created))),
			slack.NewActionBlock("active_"+task.ID, controls...),
		})
	}
	listed := listBlocks(active, left-2, "No active tasks. Add one to get started.", "active tasks")
	blocks = append(blocks, listed...)
	left -= len(listed)

	listed = listBlocks(completedRows(buckets), left-1, "No completed tasks yet.", "completed tasks")
	blocks = append(blocks, slack.NewDividerBlock(), header("✅ Completed"))
	blocks = append(blocks, listed...)
	left -= len(listed)

	deleted := make([][]slack.Block, 0, len(buckets.deleted))
	for _, task := range buckets.deleted {
		deleted = append(deleted, []slack.Block{
			section(fmt.Sprintf("~%s~\nDeleted: %s", escape(task.Title), format.Date(task.DeletedAt))),
		})
	}
	blocks = append(blocks, slack.NewDividerBlock(), header("🗑️ Deleted"))
	blocks = append(blocks, listBlocks(deleted, left, "No deleted tasks.", "deleted tasks")...)

	return blocks
}

func completedRows(buckets taskBuckets) [][]slack.Block {
	rows := make([][]slack.Block, 0, len(buckets.completed))
	for _, task := range buckets.completed {
		row := []slack.Block{
			section(fmt.Sprintf("*%s*\nCompleted: %s", escape(task.Title), format.Date(task.CompletedAt))),
		}
		if n := buckets.updates[task.ID]; n > 0 {
			row = append(row, slack.NewActionBlock("completed_"+task.ID, viewUpdatesButton(task.ID, n)))
		}
		rows = append(rows, row)
	}
	return rows
}
