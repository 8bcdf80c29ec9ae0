package notification

import "context"

type Store interface {
	Append(ctx context.Context, event Event) error
	ListByToken(ctx context.Context, tokenID string) ([]Event, error)
}
