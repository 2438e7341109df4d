// Package handlers serves the Slack request URLs, the OAuth install flow and
// the health endpoint.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/monocle-dev/taskhome/internal/auth"
	"github.com/monocle-dev/taskhome/internal/bot"
	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"
)

const defaultAckTimeout = 2500 * time.Millisecond

type Bot interface {
	Dispatch(ctx context.Context, req bot.Request, ack func()) error
	HandleEvent(ctx context.Context, event slackevents.EventsAPIEvent) error
}

type InstallationWriter interface {
	SaveInstallation(ctx context.Context, installation *models.Installation) error
}

type DirectoryTrigger interface {
	Trigger(tenantID string)
}

type StatusReporter interface {
	GetStatus() map[string]interface{}
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// OAuthExchanger trades an authorization code for tokens.
type OAuthExchanger func(ctx context.Context, code string) (*slack.OAuthV2Response, error)

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

type Options struct {
	Bot        Bot
	Logger     *zap.Logger
	AckTimeout time.Duration

	Installations InstallationWriter
	State         *auth.StateSigner
	OAuth         OAuthConfig
	Exchange      OAuthExchanger
	Directory     DirectoryTrigger

	Scheduler StatusReporter
	Database  Pinger
	Now       func() time.Time
}

type Handlers struct {
	bot           Bot
	logger        *zap.Logger
	ackTimeout    time.Duration
	installations InstallationWriter
	state         *auth.StateSigner
	oauth         OAuthConfig
	exchange      OAuthExchanger
	directory     DirectoryTrigger
	scheduler     StatusReporter
	database      Pinger
	now           func() time.Time

	inflight sync.WaitGroup
}

func New(opts Options) *Handlers {
	h := &Handlers{
		bot:           opts.Bot,
		logger:        opts.Logger,
		ackTimeout:    opts.AckTimeout,
		installations: opts.Installations,
		state:         opts.State,
		oauth:         opts.OAuth,
		exchange:      opts.Exchange,
		directory:     opts.Directory,
		scheduler:     opts.Scheduler,
		database:      opts.Database,
		now:           opts.Now,
	}

	if h.ackTimeout <= 0 {
		h.ackTimeout = defaultAckTimeout
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.exchange == nil {
		h.exchange = func(ctx context.Context, code string) (*slack.OAuthV2Response, error) {
			return slack.GetOAuthV2ResponseContext(ctx, http.DefaultClient, h.oauth.ClientID, h.oauth.ClientSecret, code, h.oauth.RedirectURL)
		}
	}

	return h
}

// Wait blocks until all work started by requests has finished.
func (h *Handlers) Wait() {
	h.inflight.Wait()
}

// detach runs fn after the response has been written. The request context
// is cancelled at that point, so fn gets one that keeps its values only.
func (h *Handlers) detach(parent context.Context, name string, fn func(ctx context.Context) error) {
	ctx := context.WithoutCancel(parent)

	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("Request handler panicked", zap.String("handler", name), zap.Error(fmt.Errorf("%v", r)))
			}
		}()

		if err := fn(ctx); err != nil {
			h.logger.Error("Request handler failed", zap.String("handler", name), zap.Error(err))
		}
	}()
}
