package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskhome/internal/bot"
	"github.com/monocle-dev/taskhome/internal/middleware"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"
)

const signingSecret = "test-signing-secret"

type fakeBot struct {
	skipAck    bool
	release    chan struct{}
	dispatched chan bot.Request
	events     chan slackevents.EventsAPIEvent
}

func newFakeBot() *fakeBot {
	return &fakeBot{
		dispatched: make(chan bot.Request, 10),
		events:     make(chan slackevents.EventsAPIEvent, 10),
	}
}

func (f *fakeBot) Dispatch(ctx context.Context, req bot.Request, ack func()) error {
	if !f.skipAck {
		ack()
	}
	if f.release != nil {
		<-f.release
	}
	f.dispatched <- req
	return nil
}

func (f *fakeBot) HandleEvent(ctx context.Context, event slackevents.EventsAPIEvent) error {
	f.events <- event
	return nil
}

type triggers struct {
	mu      sync.Mutex
	tenants []string
}

func (t *triggers) Trigger(tenantID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tenants = append(t.tenants, tenantID)
}

type brokenDB struct{}

func (brokenDB) PingContext(ctx context.Context) error { return errors.New("connection refused") }

func engine(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	signed := r.Group("/slack", middleware.SlackSignature(signingSecret))
	signed.POST("/events", h.SlackEvents)
	signed.POST("/interactions", h.SlackInteractions)
	r.GET("/slack/install", h.Install)
	r.GET("/slack/oauth/callback", h.OAuthCallback)
	r.GET("/api/health", h.HealthCheck)
	return r
}

func sign(req *http.Request, body string) *http.Request {
	stamp := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte("v0:" + stamp + ":" + body))

	req.Header.Set("X-Slack-Request-Timestamp", stamp)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func eventRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return sign(req, body)
}

func interactionRequest(payload string) *http.Request {
	body := "payload=" + url.QueryEscape(payload)
	req := httptest.NewRequest(http.MethodPost, "/slack/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return sign(req, body)
}

func serve(t *testing.T, r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newHandlers(opts Options) *Handlers {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return New(opts)
}
