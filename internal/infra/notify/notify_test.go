package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePublisher struct {
	msgs [][]byte
	err  error
}

func (f *fakePublisher) PublishNotification(_ context.Context, msg []byte) error {
	f.msgs = append(f.msgs, msg)
	return f.err
}

type failingSink struct{}

func (failingSink) Notify(context.Context, entity.Notification) error {
	return errors.New("sink down")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	_, ok := r.Last()
	assert.False(t, ok)

	require.NoError(t, r.Notify(context.Background(), entity.Info("a", "1")))
	require.NoError(t, r.Notify(context.Background(), entity.Destructive("b", "2")))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Title)

	last, ok := r.Last()
	require.True(t, ok)
	assert.True(t, last.IsDestructive())
}

func TestFanoutStampsAndDelivers(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	r1, r2 := NewRecorder(), NewRecorder()
	f := NewFanout(func() time.Time { return fixed }, r1, failingSink{}, r2)

	err := f.Notify(context.Background(), entity.Notification{Title: "Upload Complete"})
	assert.Error(t, err)

	for _, r := range []*Recorder{r1, r2} {
		last, ok := r.Last()
		require.True(t, ok)
		assert.Equal(t, entity.VariantDefault, last.Variant)
		assert.Equal(t, fixed, last.RaisedAt)
	}
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), entity.Info("Upload Complete", "ok")))
	require.NoError(t, n.Notify(context.Background(), entity.Destructive("File too large", "nope")))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "File too large", entries[1].ContextMap()["title"])
}

func TestPublishingNotifier(t *testing.T) {
	pub := &fakePublisher{}
	n := NewPublishingNotifier(pub, "sess-1", "ADD_BROLL")

	raised := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	note := entity.Destructive("File too large", "Please upload a video file smaller than 200MB")
	note.RaisedAt = raised
	require.NoError(t, n.Notify(context.Background(), note))
	require.Len(t, pub.msgs, 1)

	var msg entity.NotificationMessage
	require.NoError(t, json.Unmarshal(pub.msgs[0], &msg))
	assert.Equal(t, "sess-1", msg.SessionID)
	assert.Equal(t, "ADD_BROLL", msg.Flow)
	assert.Equal(t, entity.VariantDestructive, msg.Variant)
	assert.Equal(t, "2026-10-15T09:00:00Z", msg.RaisedAt)
	assert.NotEqual(t, uuid.Nil, msg.EventID)

	pub.err = errors.New("channel closed")
	assert.Error(t, n.Notify(context.Background(), note))
}
