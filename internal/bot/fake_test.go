package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/monocle-dev/taskhome/internal/platform"
	"github.com/monocle-dev/taskhome/internal/store"
	"github.com/monocle-dev/taskhome/internal/store/storetest"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

type publishedHome struct {
	userID string
	view   slack.HomeTabViewRequest
}

type shownModal struct {
	triggerID string
	viewID    string
	view      slack.ModalViewRequest
}

// recorder is a platform client that keeps every render it is asked for.
type recorder struct {
	mu      sync.Mutex
	homes   []publishedHome
	opened  []shownModal
	updated []shownModal
}

func (r *recorder) PublishHome(ctx context.Context, userID string, view slack.HomeTabViewRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.homes = append(r.homes, publishedHome{userID: userID, view: view})
	return nil
}

func (r *recorder) OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, shownModal{triggerID: triggerID, view: view})
	return nil
}

func (r *recorder) UpdateModal(ctx context.Context, viewID string, view slack.ModalViewRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, shownModal{viewID: viewID, view: view})
	return nil
}

func (r *recorder) ListMembers(ctx context.Context, tenantID string) ([]platform.Member, error) {
	return nil, nil
}

func (r *recorder) lastHome(t *testing.T) slack.HomeTabViewRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.homes) == 0 {
		t.Fatal("no home view published")
	}
	return r.homes[len(r.homes)-1].view
}

type syncCalls struct {
	mu      sync.Mutex
	tenants []string
}

func (s *syncCalls) Trigger(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = append(s.tenants, tenantID)
}

type fixture struct {
	bot      *Bot
	store    *store.Store
	platform *recorder
	syncs    *syncCalls
	now      time.Time
}

func newFixture(t *testing.T, multiTenant bool) *fixture {
	t.Helper()

	f := &fixture{
		store:    storetest.Open(t),
		platform: &recorder{},
		syncs:    &syncCalls{},
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	f.bot = New(f.store, platform.NewStatic(f.platform), f.syncs, zap.NewNop(), Config{
		MultiTenant: multiTenant,
		Now:         func() time.Time { return f.now },
	})

	return f
}

func (f *fixture) dispatch(t *testing.T, req Request) {
	t.Helper()
	if err := f.bot.Dispatch(context.Background(), req, func() {}); err != nil {
		t.Fatalf("dispatch %s: %v", req.ActionID, err)
	}
}
