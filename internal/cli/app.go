package cli

import (
	"context"
	"fmt"

	"github.com/monocle-dev/taskhome/db"
	"github.com/monocle-dev/taskhome/internal/bot"
	"github.com/monocle-dev/taskhome/internal/directory"
	"github.com/monocle-dev/taskhome/internal/platform"
	"github.com/monocle-dev/taskhome/internal/scheduler"
	"github.com/monocle-dev/taskhome/internal/store"
	"github.com/slack-go/slack"
)

// components is the object graph shared by every command.
type components struct {
	store     *store.Store
	scheduler *scheduler.Scheduler
	syncer    *directory.Syncer
	bot       *bot.Bot
}

func (a *App) build() (*components, error) {
	gdb, err := db.ConnectDatabase(a.cfg.Database.Driver, a.cfg.Database.DSN, a.logger)
	if err != nil {
		return nil, err
	}

	st := store.New(gdb)

	var resolver platform.Resolver
	if a.cfg.Tenancy.MultiTenant {
		resolver = platform.NewInstallations(st, a.slackOptions()...)
	} else {
		resolver = platform.NewStatic(platform.NewSlackClient(slack.New(a.cfg.Slack.BotToken, a.slackOptions()...)))
	}

	sched := scheduler.NewScheduler(a.logger)
	syncer := directory.NewSyncer(resolver, st, sched, a.logger)

	b := bot.New(st, resolver, syncer, a.logger, bot.Config{
		MultiTenant:   a.cfg.Tenancy.MultiTenant,
		Installations: st,
	})

	return &components{
		store:     st,
		scheduler: sched,
		syncer:    syncer,
		bot:       b,
	}, nil
}

func (a *App) slackOptions(extra ...slack.Option) []slack.Option {
	var options []slack.Option
	if a.cfg.Slack.APIURL != "" {
		options = append(options, slack.OptionAPIURL(a.cfg.Slack.APIURL))
	}
	return append(options, extra...)
}

// tenants lists the workspaces to sync: the single empty tenant, or every
// stored installation.
func (c *components) tenants(multiTenant bool) directory.TenantSource {
	return func(ctx context.Context) ([]string, error) {
		if !multiTenant {
			return []string{""}, nil
		}

		installations, err := c.store.ListInstallations(ctx)
		if err != nil {
			return nil, fmt.Errorf("list installations: %w", err)
		}

		ids := make([]string, 0, len(installations))
		for _, installation := range installations {
			ids = append(ids, installation.TenantID)
		}
		return ids, nil
	}
}
