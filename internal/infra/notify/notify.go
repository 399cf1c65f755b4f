// Package notify provides the toast sinks a page session writes to.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/port"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/metrics"
	"go.uber.org/zap"
)

// Recorder keeps every toast in memory, in the order raised.
type Recorder struct {
	mu    sync.RWMutex
	items []entity.Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, n entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	return nil
}

func (r *Recorder) All() []entity.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Notification(nil), r.items...)
}

// Last returns the most recent toast, if any.
func (r *Recorder) Last() (entity.Notification, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.items) == 0 {
		return entity.Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(_ context.Context, n entity.Notification) error {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
		zap.String("variant", string(n.Variant)),
	}
	if n.IsDestructive() {
		l.logger.Warn("notification raised", fields...)
	} else {
		l.logger.Info("notification raised", fields...)
	}
	return nil
}

// PublishingNotifier forwards toasts as NotificationMessage events.
type PublishingNotifier struct {
	publisher port.NotificationPublisher
	sessionID string
	flow      string
}

func NewPublishingNotifier(publisher port.NotificationPublisher, sessionID, flow string) *PublishingNotifier {
	return &PublishingNotifier{publisher: publisher, sessionID: sessionID, flow: flow}
}

func (p *PublishingNotifier) Notify(ctx context.Context, n entity.Notification) error {
	msg := entity.NotificationMessage{
		EventID:     uuid.New(),
		SessionID:   p.sessionID,
		Flow:        p.flow,
		Title:       n.Title,
		Description: n.Description,
		Variant:     n.Variant,
		RaisedAt:    n.RaisedAt.UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := p.publisher.PublishNotification(ctx, data); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Fanout stamps the toast, counts it and hands it to every sink. Every sink
// is attempted; their errors are joined.
type Fanout struct {
	sinks []port.Notifier
	now   func() time.Time
}

func NewFanout(now func() time.Time, sinks ...port.Notifier) *Fanout {
	if now == nil {
		now = time.Now
	}
	return &Fanout{sinks: sinks, now: now}
}

func (f *Fanout) Notify(ctx context.Context, n entity.Notification) error {
	if n.Variant == "" {
		n.Variant = entity.VariantDefault
	}
	if n.RaisedAt.IsZero() {
		n.RaisedAt = f.now().UTC()
	}
	metrics.NotificationsTotal.WithLabelValues(string(n.Variant)).Inc()

	var errs []error
	for _, s := range f.sinks {
		if err := s.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
