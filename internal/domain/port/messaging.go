package port

import "context"

type NotificationPublisher interface {
	PublishNotification(ctx context.Context, msg []byte) error
}
