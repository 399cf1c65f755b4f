package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/fixture"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/assets"
	miniostorage "github.com/heroxshorts/heroxshorts-studio/internal/infra/minio"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/rabbitmq"
	"github.com/heroxshorts/heroxshorts-studio/internal/usecase"
	"github.com/heroxshorts/heroxshorts-studio/pkg/logger"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	tcrabbitmq "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

func TestNotificationsPublishedToRabbitMQ(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// Start RabbitMQ container
	rmqContainer, err := tcrabbitmq.Run(ctx,
		"rabbitmq:3.12-management-alpine",
	)
	require.NoError(t, err)
	defer rmqContainer.Terminate(ctx)

	rmqURL, err := rmqContainer.AmqpURL(ctx)
	require.NoError(t, err)

	rmqConn, err := amqp.Dial(rmqURL)
	require.NoError(t, err)
	defer rmqConn.Close()

	pub, err := rabbitmq.NewPublisher(rmqConn, "heroxshorts.notifications")
	require.NoError(t, err)
	defer pub.Close()

	// Bind a queue to catch every toast
	consumeCh, err := rmqConn.Channel()
	require.NoError(t, err)
	defer consumeCh.Close()

	q, err := consumeCh.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, consumeCh.QueueBind(q.Name, "notification", "heroxshorts.notifications", false, nil))

	deliveries, err := consumeCh.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	// Page session on the real clock, with a short job delay
	log, _ := logger.New("debug")
	timings := usecase.DefaultTimings()
	timings.ProcessDelay = 50 * time.Millisecond

	registry := usecase.NewRegistry(usecase.SessionDeps{
		Timings:   timings,
		Logger:    log,
		Publisher: rabbitmq.NewNotificationPublisher(pub, "notification"),
	})
	defer registry.CloseAll()

	session, err := registry.Open("GEN_VOICE")
	require.NoError(t, err)
	require.NoError(t, session.Process(ctx, entity.OptionSet{"text": "hello from the studio"}))

	var msg entity.NotificationMessage
	select {
	case d := <-deliveries:
		require.NoError(t, json.Unmarshal(d.Body, &msg))
	case <-time.After(30 * time.Second):
		t.Fatal("timeout waiting for notification event")
	}

	assert.Equal(t, session.ID(), msg.SessionID)
	assert.Equal(t, "GEN_VOICE", msg.Flow)
	assert.Equal(t, "Generation started", msg.Title)
	assert.Equal(t, entity.VariantDefault, msg.Variant)
	assert.NotEmpty(t, msg.RaisedAt)

	// A rejection is published too
	err = session.Process(ctx, entity.OptionSet{})
	require.ErrorIs(t, err, entity.ErrEmptyField)

	select {
	case d := <-deliveries:
		require.NoError(t, json.Unmarshal(d.Body, &msg))
	case <-time.After(30 * time.Second):
		t.Fatal("timeout waiting for rejection event")
	}
	assert.Equal(t, entity.VariantDestructive, msg.Variant)
}

func TestProjectClipsPresignedFromMinIO(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// Start MinIO container
	minioContainer, err := tcminio.Run(ctx,
		"minio/minio:latest",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	defer minioContainer.Terminate(ctx)

	minioEndpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	store, err := miniostorage.NewAssetStore(miniostorage.StorageConfig{
		Endpoint:  minioEndpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
		Bucket:    "demo-assets",
		TTL:       10 * time.Minute,
	})
	require.NoError(t, err)
	require.NoError(t, store.EnsureBucket(ctx))

	// Seed the clip of the b-roll project
	projects, err := fixture.Projects()
	require.NoError(t, err)
	broll := projects[15]
	require.Equal(t, entity.PipelineBroll, broll.Type)

	minioClient, err := miniogo.New(minioEndpoint, &miniogo.Options{
		Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	require.NoError(t, err)

	content := []byte("not really an mp4")
	_, err = minioClient.PutObject(ctx, "demo-assets", assets.ObjectKey(broll.Clips[0].Path),
		bytes.NewReader(content), int64(len(content)), miniogo.PutObjectOptions{ContentType: "video/mp4"})
	require.NoError(t, err)

	log, _ := logger.New("debug")
	feed := usecase.NewProjectFeed(fixture.NewStaticSource(), store, log)

	detail, err := feed.Project(ctx, broll.ID)
	require.NoError(t, err)
	require.Len(t, detail.Clips, 1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detail.Clips[0].Path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)
}
