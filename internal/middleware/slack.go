package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/slack-go/slack"
)

// SlackSignature rejects requests whose X-Slack-Signature does not match the
// signing secret. The verified body is kept on the context and restored on
// the request so later handlers can still bind it.
func SlackSignature(signingSecret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		body, err := io.ReadAll(ctx.Request.Body)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}

		verifier, err := slack.NewSecretsVerifier(ctx.Request.Header, signingSecret)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or stale Slack signature"})
			return
		}

		if _, err := verifier.Write(body); err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify signature"})
			return
		}

		if err := verifier.Ensure(); err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Slack signature"})
			return
		}

		ctx.Request.Body = io.NopCloser(bytes.NewReader(body))
		ctx.Set(types.ContextRawBodyKey, body)
		ctx.Next()
	}
}
