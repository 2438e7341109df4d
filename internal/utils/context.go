package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskhome/internal/types"
)

// GetRawBody returns the request body captured by the signature middleware.
func GetRawBody(ctx *gin.Context) ([]byte, error) {
	body, exists := ctx.Get(types.ContextRawBodyKey)

	if !exists {
		return nil, fmt.Errorf("request body was not captured")
	}

	raw, ok := body.([]byte)

	if !ok {
		return nil, fmt.Errorf("invalid body type in context")
	}

	return raw, nil
}
