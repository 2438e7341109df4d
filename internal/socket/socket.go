// Package socket receives events and interactions over a Socket Mode
// connection instead of public request URLs.
package socket

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/monocle-dev/taskhome/internal/bot"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"
)

type Bot interface {
	Dispatch(ctx context.Context, req bot.Request, ack func()) error
	HandleEvent(ctx context.Context, event slackevents.EventsAPIEvent) error
}

type acker interface {
	Ack(req socketmode.Request, payload ...interface{})
}

type Runner struct {
	client *socketmode.Client
	acker  acker
	bot    Bot
	logger *zap.Logger
	wg     sync.WaitGroup
}

// New wraps api, which must carry an app-level token.
func New(api *slack.Client, b Bot, logger *zap.Logger) *Runner {
	client := socketmode.New(api)
	return &Runner{client: client, acker: client, bot: b, logger: logger}
}

// Run holds the connection open until ctx is cancelled, then waits for the
// handlers still running.
func (r *Runner) Run(ctx context.Context) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-r.client.Events:
				if !ok {
					return
				}
				r.handle(ctx, evt)
			}
		}
	}()

	err := r.client.RunContext(ctx)
	r.wg.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("socket mode: %w", err)
	}
	return nil
}

func (r *Runner) handle(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		r.logger.Info("Connecting to Slack in socket mode")

	case socketmode.EventTypeConnected:
		r.logger.Info("Connected to Slack in socket mode")

	case socketmode.EventTypeConnectionError:
		r.logger.Warn("Socket mode connection failed, retrying")

	case socketmode.EventTypeEventsAPI:
		event, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok || evt.Request == nil {
			return
		}

		r.acker.Ack(*evt.Request)
		r.spawn(ctx, "event", func(ctx context.Context) error {
			return r.bot.HandleEvent(ctx, event)
		})

	case socketmode.EventTypeInteractive:
		callback, ok := evt.Data.(slack.InteractionCallback)
		if !ok || evt.Request == nil {
			return
		}

		var once sync.Once
		request := *evt.Request
		ack := func() { once.Do(func() { r.acker.Ack(request) }) }

		requests := bot.RequestsFromInteraction(callback)
		r.spawn(ctx, "interaction", func(ctx context.Context) error {
			defer ack()

			var errs []error
			for _, req := range requests {
				errs = append(errs, r.bot.Dispatch(ctx, req, ack))
			}
			return errors.Join(errs...)
		})
	}
}

func (r *Runner) spawn(ctx context.Context, name string, fn func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		if err := fn(ctx); err != nil {
			r.logger.Error("Socket mode handler failed", zap.String("handler", name), zap.Error(err))
		}
	}()
}
