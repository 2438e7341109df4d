package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskhome/internal/utils"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"
)

// SlackEvents answers the URL verification handshake and acknowledges event
// callbacks at once, handling them after the response.
func (h *Handlers) SlackEvents(ctx *gin.Context) {
	body, err := utils.GetRawBody(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unverified request"})
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())

	if err != nil {
		var outer struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(body, &outer) == nil && outer.Type == slackevents.CallbackEvent {
			// an inner event type the library does not model; nothing to do
			h.logger.Debug("Unparsed event callback", zap.Error(err))
			ctx.Status(http.StatusOK)
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		verification, ok := event.Data.(*slackevents.EventsAPIURLVerificationEvent)

		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"challenge": verification.Challenge})

	case slackevents.CallbackEvent:
		h.detach(ctx.Request.Context(), "event", func(c context.Context) error {
			return h.bot.HandleEvent(c, event)
		})
		ctx.Status(http.StatusOK)

	default:
		ctx.Status(http.StatusOK)
	}
}
