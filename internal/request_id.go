package internal

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type contextKey string

const requestIdKey contextKey = "requestId"

// GenerateRequestId creates a random identifier used to correlate log records of one request.
func GenerateRequestId() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// WithRequestId returns ctx unchanged if it already carries a request id.
func WithRequestId(ctx context.Context) context.Context {
	if _, ok := ctx.Value(requestIdKey).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, requestIdKey, GenerateRequestId())
}

func GetRequestId(ctx context.Context) string {
	if reqId, ok := ctx.Value(requestIdKey).(string); ok {
		return reqId
	}
	return ""
}
