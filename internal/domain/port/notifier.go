package port

import (
	"context"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
)

// Notifier receives every toast a page raises.
type Notifier interface {
	Notify(ctx context.Context, n entity.Notification) error
}

// Navigator moves the user to another view once an operation completes.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}
