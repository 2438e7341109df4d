package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskhome/db"
	"github.com/monocle-dev/taskhome/internal/auth"
	"github.com/monocle-dev/taskhome/internal/config"
	"github.com/monocle-dev/taskhome/internal/handlers"
	"github.com/monocle-dev/taskhome/internal/router"
	"github.com/monocle-dev/taskhome/internal/socket"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive Slack events and interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := app.build()
			if err != nil {
				return err
			}
			defer c.scheduler.Stop()

			if migrate {
				if err := db.MigrateDatabase(c.store.DB()); err != nil {
					return err
				}
			}

			if interval := app.cfg.Directory.SyncInterval; interval > 0 {
				c.syncer.Schedule(interval, c.tenants(app.cfg.Tenancy.MultiTenant))
			}

			if app.cfg.Server.Mode == config.ModeSocket {
				return app.serveSocket(ctx, c)
			}
			return app.serveHTTP(ctx, c)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Migrate the schema before serving")

	return cmd
}

func (a *App) serveHTTP(ctx context.Context, c *components) error {
	opts := handlers.Options{
		Bot:        c.bot,
		Logger:     a.logger,
		AckTimeout: a.cfg.Server.AckTimeout,
		Scheduler:  c.scheduler,
	}

	if sqlDB, err := c.store.DB().DB(); err == nil {
		opts.Database = sqlDB
	}

	if a.cfg.Tenancy.MultiTenant {
		state, err := auth.NewStateSigner(a.cfg.Slack.StateSecret, a.cfg.Slack.StateTTL)
		if err != nil {
			return err
		}

		opts.State = state
		opts.Installations = c.store
		opts.Directory = c.syncer
		opts.OAuth = handlers.OAuthConfig{
			ClientID:     a.cfg.Slack.ClientID,
			ClientSecret: a.cfg.Slack.ClientSecret,
			RedirectURL:  a.cfg.Slack.RedirectURL,
			Scopes:       a.cfg.Slack.Scopes,
		}
	}

	h := handlers.New(opts)

	if !a.cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler: router.NewRouter(h, router.Config{
			SigningSecret:  a.cfg.Slack.SigningSecret,
			MultiTenant:    a.cfg.Tenancy.MultiTenant,
			AllowedOrigins: a.cfg.CORS.AllowedOrigins,
		}, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		a.logger.Info("Listening", zap.String("addr", server.Addr), zap.Bool("multi_tenant", a.cfg.Tenancy.MultiTenant))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	h.Wait()
	return nil
}

func (a *App) serveSocket(ctx context.Context, c *components) error {
	api := slack.New(a.cfg.Slack.BotToken, a.slackOptions(slack.OptionAppLevelToken(a.cfg.Slack.AppToken))...)

	return socket.New(api, c.bot, a.logger).Run(ctx)
}
