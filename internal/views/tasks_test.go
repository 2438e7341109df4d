package views

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	hActive    = "📝 Active Tasks"
	hCompleted = "✅ Completed"
	hDeleted   = "🗑️ Deleted"
)

func TestMyTasksSingleActiveTaskWithoutUpdates(t *testing.T) {
	b, s := newTestBuilder(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTask(ctx, &models.Task{UserID: "U1", Title: "Write report"}))

	view, err := b.Home(ctx, HomeRequest{Mode: types.ModeMyTasks, ViewerID: "U1"})
	require.NoError(t, err)

	texts := blockTexts(view.Blocks.BlockSet)
	active := between(texts, hActive, hCompleted)
	require.Len(t, active, 1)
	assert.Contains(t, active[0], "Write report")
	assert.Contains(t, active[0], "Created: ")

	blocks := view.Blocks.BlockSet
	assert.Empty(t, buttonsFor(blocks, types.ActionViewUpdates))
	assert.Len(t, buttonsFor(blocks, types.ActionCompleteTask), 1)
	assert.Len(t, buttonsFor(blocks, types.ActionDeleteTask), 1)
	assert.Len(t, buttonsFor(blocks, types.ActionOpenUpdateProgress), 1)

	assert.Equal(t, []string{"_No completed tasks yet._"}, between(texts, hCompleted, hDeleted))
}

func TestMyTasksShowsUpdateCount(t *testing.T) {
	b, s := newTestBuilder(t)
	ctx := context.Background()

	task := &models.Task{UserID: "U1", Title: "Write report"}
	require.NoError(t, s.CreateTask(ctx, task))
	require.NoError(t, s.CreateUpdate(ctx, &models.Update{TaskID: task.ID, UserID: "U1", Content: "outline done"}))

	view, err := b.Home(ctx, HomeRequest{Mode: types.ModeMyTasks, ViewerID: "U1"})
	require.NoError(t, err)

	buttons := buttonsFor(view.Blocks.BlockSet, types.ActionViewUpdates)
	require.Len(t, buttons, 1)
	assert.Equal(t, "View Updates (1)", buttons[0].Text.Text)
	assert.Equal(t, task.ID, buttons[0].Value)
}

func TestPartitionSortsClosedBucketsByTheirOwnTimestamp(t *testing.T) {
	day := func(d int) *time.Time {
		ts := time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}

	// fetch order is created_at desc; closing order differs on purpose
	tasks := []models.Task{
		{ID: "c1", Status: models.TaskCompleted, CompletedAt: day(2)},
		{ID: "a1", Status: models.TaskActive},
		{ID: "d1", Status: models.TaskDeleted, DeletedAt: day(3)},
		{ID: "c2", Status: models.TaskCompleted, CompletedAt: day(9)},
		{ID: "a2", Status: models.TaskActive},
		{ID: "d2", Status: models.TaskDeleted, DeletedAt: day(7)},
		{ID: "c3", Status: models.TaskCompleted, CompletedAt: day(5)},
	}

	buckets := partition(tasks, []models.Update{{TaskID: "a1"}, {TaskID: "a1"}, {TaskID: "c2"}})

	ids := func(ts []models.Task) []string {
		var out []string
		for _, task := range ts {
			out = append(out, task.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a1", "a2"}, ids(buckets.active))
	assert.Equal(t, []string{"c2", "c3", "c1"}, ids(buckets.completed))
	assert.Equal(t, []string{"d2", "d1"}, ids(buckets.deleted))
	assert.Equal(t, 2, buckets.updates["a1"])
	assert.Equal(t, 1, buckets.updates["c2"])
}

func TestMyTasksClosedBuckets(t *testing.T) {
	b, s := newTestBuilder(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older := &models.Task{UserID: "U1", Title: "older", CreatedAt: base}
	newer := &models.Task{UserID: "U1", Title: "newer", CreatedAt: base.Add(time.Hour)}
	gone := &models.Task{UserID: "U1", Title: "gone", CreatedAt: base.Add(2 * time.Hour)}
	for _, task := range []*models.Task{older, newer, gone} {
		require.NoError(t, s.CreateTask(ctx, task))
	}

	// completed in the opposite order of creation
	require.NoError(t, s.CompleteTask(ctx, "", "U1", newer.ID, base.Add(24*time.Hour)))
	require.NoError(t, s.CompleteTask(ctx, "", "U1", older.ID, base.Add(48*time.Hour)))
	require.NoError(t, s.DeleteTask(ctx, "", "U1", gone.ID, base.Add(72*time.Hour)))

	view, err := b.Home(ctx, HomeRequest{Mode: types.ModeMyTasks, ViewerID: "U1"})
	require.NoError(t, err)

	texts := blockTexts(view.Blocks.BlockSet)
	assert.Equal(t, []string{"_No active tasks. Add one to get started._"}, between(texts, hActive, hCompleted))

	completed := between(texts, hCompleted, hDeleted)
	require.Len(t, completed, 2)
	assert.Contains(t, completed[0], "older")
	assert.Contains(t, completed[1], "newer")

	deleted := between(texts, hDeleted, "")
	require.Len(t, deleted, 1)
	assert.Contains(t, deleted[0], "gone")

	// closed tasks carry no mutation controls
	assert.Empty(t, buttonsFor(view.Blocks.BlockSet, types.ActionCompleteTask))
	assert.Empty(t, buttonsFor(view.Blocks.BlockSet, types.ActionDeleteTask))
}

func TestListingFailuresRenderPlaceholders(t *testing.T) {
	b := NewBuilder(failingReader{}, zap.NewNop())

	view, err := b.Home(context.Background(), HomeRequest{Mode: types.ModeMyTasks, ViewerID: "U1"})
	require.NoError(t, err)

	texts := blockTexts(view.Blocks.BlockSet)
	assert.Len(t, between(texts, hActive, hCompleted), 1)
	assert.True(t, containsText(texts, "No active tasks"))
	assert.True(t, containsText(texts, "No deleted tasks"))
}

func TestMyTasksStaysUnderBlockLimit(t *testing.T) {
	b, s := newTestBuilder(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var tasks []*models.Task
	for i := 0; i < 85; i++ {
		task := &models.Task{UserID: "U1", Title: fmt.Sprintf("task %02d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, s.CreateTask(ctx, task))
		tasks = append(tasks, task)
	}
	for _, task := range tasks[:10] {
		require.NoError(t, s.CompleteTask(ctx, "", "U1", task.ID, base.Add(24*time.Hour)))
	}
	for _, task := range tasks[10:15] {
		require.NoError(t, s.DeleteTask(ctx, "", "U1", task.ID, base.Add(48*time.Hour)))
	}

	view, err := b.Home(ctx, HomeRequest{Mode: types.ModeMyTasks, ViewerID: "U1"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(view.Blocks.BlockSet), viewBlockLimit)

	texts := blockTexts(view.Blocks.BlockSet)
	active := between(texts, hActive, hCompleted)
	assert.Equal(t, "_Showing 44 of 70 active tasks._", active[len(active)-1])
	assert.Equal(t, []string{"_Showing 1 of 10 completed tasks._"}, between(texts, hCompleted, hDeleted)[1:])
	assert.Equal(t, []string{"_Showing 0 of 5 deleted tasks._"}, between(texts, hDeleted, ""))
}

func TestMyTasksEscapesTitles(t *testing.T) {
	b, s := newTestBuilder(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTask(ctx, &models.Task{UserID: "U1", Title: "ping <!here> & co"}))

	view, err := b.Home(ctx, HomeRequest{Mode: types.ModeMyTasks, ViewerID: "U1"})
	require.NoError(t, err)

	active := between(blockTexts(view.Blocks.BlockSet), hActive, hCompleted)
	require.Len(t, active, 1)
	assert.Contains(t, active[0], "*ping &lt;!here&gt; &amp; co*")
}
