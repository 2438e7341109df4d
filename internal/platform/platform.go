// Package platform is the boundary to Slack: rendering calls and the member
// list used by directory sync.
package platform

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

type Member struct {
	ID       string
	TenantID string
	Name     string
	Email    string
	IsBot    bool
	Deleted  bool
}

type Client interface {
	PublishHome(ctx context.Context, userID string, view slack.HomeTabViewRequest) error
	OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	UpdateModal(ctx context.Context, viewID string, view slack.ModalViewRequest) error
	ListMembers(ctx context.Context, tenantID string) ([]Member, error)
}

// SlackClient implements Client on the Web API.
type SlackClient struct {
	api *slack.Client
}

func NewSlackClient(api *slack.Client) *SlackClient {
	return &SlackClient{api: api}
}

func (c *SlackClient) PublishHome(ctx context.Context, userID string, view slack.HomeTabViewRequest) error {
	if _, err := c.api.PublishViewContext(ctx, userID, view, ""); err != nil {
		return fmt.Errorf("views.publish: %w", err)
	}
	return nil
}

func (c *SlackClient) OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("views.open: %w", err)
	}
	return nil
}

func (c *SlackClient) UpdateModal(ctx context.Context, viewID string, view slack.ModalViewRequest) error {
	if _, err := c.api.UpdateViewContext(ctx, view, "", "", viewID); err != nil {
		return fmt.Errorf("views.update: %w", err)
	}
	return nil
}

func (c *SlackClient) ListMembers(ctx context.Context, tenantID string) ([]Member, error) {
	var opts []slack.GetUsersOption
	if tenantID != "" {
		opts = append(opts, slack.GetUsersOptionTeamID(tenantID))
	}

	users, err := c.api.GetUsersContext(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("users.list: %w", err)
	}

	members := make([]Member, 0, len(users))
	for _, u := range users {
		members = append(members, Member{
			ID:       u.ID,
			TenantID: tenantID,
			Name:     displayName(u),
			Email:    u.Profile.Email,
			IsBot:    u.IsBot || u.ID == "USLACKBOT",
			Deleted:  u.Deleted,
		})
	}

	return members, nil
}

func displayName(u slack.User) string {
	switch {
	case u.Profile.RealName != "":
		return u.Profile.RealName
	case u.RealName != "":
		return u.RealName
	default:
		return u.Name
	}
}
