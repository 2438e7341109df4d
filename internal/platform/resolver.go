package platform

import (
	"context"
	"fmt"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/slack-go/slack"
)

// Resolver picks the client that speaks for a tenant.
type Resolver interface {
	Client(ctx context.Context, tenantID string) (Client, error)
}

// Static serves the single-tenant configuration: one bot token for everyone.
type Static struct {
	client Client
}

func NewStatic(client Client) *Static {
	return &Static{client: client}
}

func (s *Static) Client(ctx context.Context, tenantID string) (Client, error) {
	return s.client, nil
}

type InstallationSource interface {
	GetInstallation(ctx context.Context, tenantID string) (*models.Installation, error)
}

// Installations builds a client from the stored installation of a tenant. A
// missing installation is an error, never a fallback to another token.
type Installations struct {
	source    InstallationSource
	newClient func(token string) Client
}

func NewInstallations(source InstallationSource, options ...slack.Option) *Installations {
	return &Installations{
		source: source,
		newClient: func(token string) Client {
			return NewSlackClient(slack.New(token, options...))
		},
	}
}

func (r *Installations) Client(ctx context.Context, tenantID string) (Client, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant id is required in multi-tenant mode")
	}

	installation, err := r.source.GetInstallation(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return r.newClient(installation.BotToken), nil
}
