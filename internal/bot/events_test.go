package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/store"
	"github.com/slack-go/slack/slackevents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callback(teamID string, inner interface{}) slackevents.EventsAPIEvent {
	return slackevents.EventsAPIEvent{
		Type:       slackevents.CallbackEvent,
		TeamID:     teamID,
		InnerEvent: slackevents.EventsAPIInnerEvent{Data: inner},
	}
}

func TestHandleEventHomeOpened(t *testing.T) {
	f := newFixture(t, false)

	err := f.bot.HandleEvent(context.Background(), callback("T1", &slackevents.AppHomeOpenedEvent{User: "U1", Tab: "home"}))
	require.NoError(t, err)

	require.Len(t, f.platform.homes, 1)
	assert.Equal(t, "U1", f.platform.homes[0].userID)
	assert.Equal(t, []string{""}, f.syncs.tenants)
}

func TestHandleEventIgnoresMessagesTab(t *testing.T) {
	f := newFixture(t, false)

	err := f.bot.HandleEvent(context.Background(), callback("T1", &slackevents.AppHomeOpenedEvent{User: "U1", Tab: "messages"}))
	require.NoError(t, err)
	assert.Empty(t, f.platform.homes)
}

func TestHandleEventUninstallForgetsInstallation(t *testing.T) {
	f := newFixture(t, true)
	f.bot.installs = f.store
	ctx := context.Background()

	require.NoError(t, f.store.SaveInstallation(ctx, &models.Installation{TenantID: "T1", BotToken: "xoxb-1"}))
	require.NoError(t, f.store.SaveInstallation(ctx, &models.Installation{TenantID: "T2", BotToken: "xoxb-2"}))

	require.NoError(t, f.bot.HandleEvent(ctx, callback("T1", &slackevents.AppUninstalledEvent{})))

	_, err := f.store.GetInstallation(ctx, "T1")
	assert.True(t, errors.Is(err, store.ErrInstallationNotFound))
	_, err = f.store.GetInstallation(ctx, "T2")
	assert.NoError(t, err)

	// user token revocations leave the bot installed
	revoked := &slackevents.TokensRevokedEvent{}
	revoked.Tokens.Oauth = []string{"U1"}
	require.NoError(t, f.bot.HandleEvent(ctx, callback("T2", revoked)))
	_, err = f.store.GetInstallation(ctx, "T2")
	assert.NoError(t, err)

	revoked.Tokens.Bot = []string{"B1"}
	require.NoError(t, f.bot.HandleEvent(ctx, callback("T2", revoked)))
	_, err = f.store.GetInstallation(ctx, "T2")
	assert.True(t, errors.Is(err, store.ErrInstallationNotFound))
}

func TestHandleEventUninstallIsNoopForSingleTenant(t *testing.T) {
	f := newFixture(t, false)
	f.bot.installs = f.store

	require.NoError(t, f.bot.HandleEvent(context.Background(), callback("T1", &slackevents.AppUninstalledEvent{})))
}
