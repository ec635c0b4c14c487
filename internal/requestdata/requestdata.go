package requestdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type contextKey struct{}

var requestDataKey = contextKey{}

// RequestData is the authenticated identity of the current request,
// stamped into the context by the auth middleware. Services read it
// from the context they were handed; there is no ambient global.
type RequestData struct {
	UserID      uuid.UUID
	Email       string
	Role        types.UserRole
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
