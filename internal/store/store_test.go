package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/store"
	"github.com/monocle-dev/taskhome/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycle(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	task := &models.Task{UserID: "U1", Title: "Write report"}
	require.NoError(t, s.CreateTask(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, models.TaskActive, task.Status)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.CompleteTask(ctx, "", "U1", task.ID, at))

	got, err := s.GetTask(ctx, "", task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(at))
	assert.Nil(t, got.DeletedAt)

	// a completed task cannot be deleted or completed again
	err = s.DeleteTask(ctx, "", "U1", task.ID, at)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	err = s.CompleteTask(ctx, "", "U1", task.ID, at)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestCloseTaskRequiresOwner(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	task := &models.Task{UserID: "U1", Title: "Mine"}
	require.NoError(t, s.CreateTask(ctx, task))

	err := s.DeleteTask(ctx, "", "U2", task.ID, time.Now())
	assert.True(t, errors.Is(err, store.ErrNotFound))

	got, err := s.GetTask(ctx, "", task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskActive, got.Status)
}

func TestListTasksNewestFirstAndTenantScoped(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"first", "second", "third"} {
		require.NoError(t, s.CreateTask(ctx, &models.Task{
			TenantID:  "T1",
			UserID:    "U1",
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.CreateTask(ctx, &models.Task{TenantID: "T2", UserID: "U1", Title: "other tenant"}))

	tasks, err := s.ListTasks(ctx, "T1", "U1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "first", tasks[2].Title)

	_, err = s.GetTask(ctx, "T2", tasks[0].ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUpdates(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	task := &models.Task{UserID: "U1", Title: "Ship it"}
	require.NoError(t, s.CreateTask(ctx, task))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateUpdate(ctx, &models.Update{TaskID: task.ID, UserID: "U1", Content: "started", CreatedAt: base}))
	require.NoError(t, s.CreateUpdate(ctx, &models.Update{TaskID: task.ID, UserID: "U1", Content: "halfway", CreatedAt: base.Add(time.Hour)}))

	updates, err := s.ListUpdatesByTask(ctx, "", task.ID)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "halfway", updates[0].Content)

	mine, err := s.ListUpdatesByUser(ctx, "", "U1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestUpsertUsersIsIdempotent(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	users := []models.User{
		{ID: "U2", Name: "Zoe", Email: "zoe@example.com"},
		{ID: "U1", Name: "Adam", Email: "adam@example.com"},
	}
	require.NoError(t, s.UpsertUsers(ctx, users))

	users[0].Email = "zoe@new.example.com"
	require.NoError(t, s.UpsertUsers(ctx, users))
	require.NoError(t, s.UpsertUsers(ctx, []models.User{{ID: "U1", TenantID: "T9", Name: "Other"}}))

	got, err := s.ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Adam", got[0].Name)
	assert.Equal(t, "zoe@new.example.com", got[1].Email)

	byID, err := s.ListUsersByIDs(ctx, "", []string{"U2"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Zoe", byID[0].Name)
}

func TestFavoritesRoundTrip(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, "", "U1", "U2"))
	require.NoError(t, s.AddFavorite(ctx, "", "U1", "U2"))

	ids, err := s.ListFavoriteIDs(ctx, "", "U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"U2"}, ids)

	require.NoError(t, s.RemoveFavorite(ctx, "", "U1", "U2"))
	require.NoError(t, s.RemoveFavorite(ctx, "", "U1", "U2"))

	ids, err = s.ListFavoriteIDs(ctx, "", "U1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestInstallations(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	_, err := s.GetInstallation(ctx, "T1")
	assert.True(t, errors.Is(err, store.ErrInstallationNotFound))

	require.NoError(t, s.SaveInstallation(ctx, &models.Installation{TenantID: "T1", BotToken: "xoxb-1", InstalledAt: time.Now()}))
	require.NoError(t, s.SaveInstallation(ctx, &models.Installation{TenantID: "T1", BotToken: "xoxb-2", InstalledAt: time.Now()}))

	inst, err := s.GetInstallation(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "xoxb-2", inst.BotToken)

	all, err := s.ListInstallations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteInstallation(ctx, "T1"))
	_, err = s.GetInstallation(ctx, "T1")
	assert.True(t, errors.Is(err, store.ErrInstallationNotFound))
}
