package services

import (
	"alba/entity"
	"context"
)

// Gateway is the subset of the gateway client used by the callback server.
type Gateway interface {
	PayTypes(ctx context.Context) ([]any, error)
	TransactionDetails(ctx context.Context, tid, orderId string) (entity.Response, error)
	Refund(ctx context.Context, refund *entity.RefundRequest) (entity.Response, error)
	GateDetails(ctx context.Context, gate string) (entity.Response, error)
	CancelRecurrentPayment(ctx context.Context, orderId string) (entity.Response, error)
	CheckCallbackSign(post map[string]string) bool
}
