package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskhome/internal/bot"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// SlackInteractions decodes a block action or view submission and hands it
// to the bot. The HTTP response is the acknowledgement: it is written as soon
// as the bot acks, or when the ack timeout runs out, while the handler keeps
// running.
func (h *Handlers) SlackInteractions(ctx *gin.Context) {
	payload := ctx.PostForm("payload")

	if payload == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing payload"})
		return
	}

	var callback slack.InteractionCallback

	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	requests := bot.RequestsFromInteraction(callback)

	if len(requests) == 0 {
		ctx.Status(http.StatusOK)
		return
	}

	acked := make(chan struct{})
	var once sync.Once
	ack := func() { once.Do(func() { close(acked) }) }

	h.detach(ctx.Request.Context(), "interaction", func(c context.Context) error {
		defer ack()

		var errs []error
		for _, req := range requests {
			errs = append(errs, h.bot.Dispatch(c, req, ack))
		}
		return errors.Join(errs...)
	})

	timer := time.NewTimer(h.ackTimeout)
	defer timer.Stop()

	select {
	case <-acked:
	case <-timer.C:
		h.logger.Warn("Interaction not acknowledged in time", zap.String("type", string(callback.Type)))
	}

	ctx.Status(http.StatusOK)
}
