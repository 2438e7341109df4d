package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskhome/internal/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const slackAuthorizeURL = "https://slack.com/oauth/v2/authorize"

// Install redirects the browser to the Slack consent screen.
func (h *Handlers) Install(ctx *gin.Context) {
	state, err := h.state.Generate()

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start installation"})
		return
	}

	query := url.Values{}
	query.Set("client_id", h.oauth.ClientID)
	query.Set("scope", strings.Join(h.oauth.Scopes, ","))
	query.Set("state", state)

	if h.oauth.RedirectURL != "" {
		query.Set("redirect_uri", h.oauth.RedirectURL)
	}

	ctx.Redirect(http.StatusFound, slackAuthorizeURL+"?"+query.Encode())
}

// OAuthCallback completes an installation and stores the workspace's bot
// token. Reinstalling replaces the stored installation.
func (h *Handlers) OAuthCallback(ctx *gin.Context) {
	if reason := ctx.Query("error"); reason != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Installation was not approved: " + reason})
		return
	}

	if err := h.state.Verify(ctx.Query("state")); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired state"})
		return
	}

	code := ctx.Query("code")

	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing code"})
		return
	}

	resp, err := h.exchange(ctx.Request.Context(), code)

	if err != nil {
		h.logger.Error("OAuth exchange failed", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to exchange code"})
		return
	}

	raw, err := json.Marshal(resp)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record installation"})
		return
	}

	installation := models.Installation{
		TenantID:    resp.Team.ID,
		TeamName:    resp.Team.Name,
		BotToken:    resp.AccessToken,
		BotUserID:   resp.BotUserID,
		AppID:       resp.AppID,
		Scope:       resp.Scope,
		Raw:         datatypes.JSON(raw),
		InstalledAt: h.now(),
	}

	if err := h.installations.SaveInstallation(ctx.Request.Context(), &installation); err != nil {
		h.logger.Error("Failed to save installation", zap.String("tenant_id", installation.TenantID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record installation"})
		return
	}

	h.logger.Info("Workspace installed", zap.String("tenant_id", installation.TenantID), zap.String("team", installation.TeamName))

	if h.directory != nil {
		h.directory.Trigger(installation.TenantID)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Taskhome installed",
		"team_id":   installation.TenantID,
		"team_name": installation.TeamName,
	})
}
