package bot

import (
	"context"
	"fmt"

	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"
)

// HandleEvent routes an Events API callback. Only the home tab opening and
// the uninstall lifecycle are of interest; everything else is ignored.
func (b *Bot) HandleEvent(ctx context.Context, event slackevents.EventsAPIEvent) error {
	if event.Type != slackevents.CallbackEvent {
		return nil
	}

	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.AppHomeOpenedEvent:
		if ev.Tab != "home" {
			return nil
		}
		return b.HomeOpened(ctx, ev.User, event.TeamID)

	case *slackevents.AppUninstalledEvent:
		return b.forget(ctx, event.TeamID, "app_uninstalled")

	case *slackevents.TokensRevokedEvent:
		if len(ev.Tokens.Bot) == 0 {
			return nil
		}
		return b.forget(ctx, event.TeamID, "tokens_revoked")
	}

	b.logger.Debug("Ignoring event", zap.String("type", event.InnerEvent.Type))
	return nil
}

func (b *Bot) forget(ctx context.Context, tenantID, reason string) error {
	if !b.multiTenant || b.installs == nil || tenantID == "" {
		return nil
	}

	if err := b.installs.DeleteInstallation(ctx, tenantID); err != nil {
		return fmt.Errorf("delete installation of %q: %w", tenantID, err)
	}

	b.logger.Info("Installation removed", zap.String("tenant_id", tenantID), zap.String("reason", reason))
	return nil
}
