package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    int    `env:"HTTP_PORT"     envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT"  envDefault:"8083"`
	LogLevel    string `env:"LOG_LEVEL"     envDefault:"info"`
	GinMode     string `env:"GIN_MODE"      envDefault:"release"`

	JaegerEndpoint string `env:"JAEGER_ENDPOINT" envDefault:""`

	RabbitMQURL        string `env:"RABBITMQ_URL"         envDefault:""`
	RabbitMQExchange   string `env:"RABBITMQ_EXCHANGE"    envDefault:"heroxshorts.notifications"`
	RabbitMQRoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"notification"`

	AssetBasePath   string        `env:"ASSET_BASE_PATH"    envDefault:""`
	MinIOEndpoint   string        `env:"MINIO_ENDPOINT"     envDefault:""`
	MinIOAccessKey  string        `env:"MINIO_ACCESS_KEY"   envDefault:"minioadmin"`
	MinIOSecretKey  string        `env:"MINIO_SECRET_KEY"   envDefault:"minioadmin"`
	MinIOUseSSL     bool          `env:"MINIO_USE_SSL"      envDefault:"false"`
	MinIORegion     string        `env:"MINIO_REGION"       envDefault:"us-east-1"`
	MinIOBucket     string        `env:"MINIO_ASSET_BUCKET" envDefault:"demo-assets"`
	MinIOPresignTTL time.Duration `env:"MINIO_PRESIGN_TTL"  envDefault:"1h"`

	UploadTick     time.Duration `env:"SIM_UPLOAD_TICK"      envDefault:"500ms"`
	UploadStep     int           `env:"SIM_UPLOAD_STEP"      envDefault:"5"`
	UploadCap      int           `env:"SIM_UPLOAD_CAP"       envDefault:"95"`
	UploadDuration time.Duration `env:"SIM_UPLOAD_DURATION"  envDefault:"3s"`
	BrollUpload    time.Duration `env:"SIM_BROLL_UPLOAD"     envDefault:"2s"`
	URLDelay       time.Duration `env:"SIM_URL_DELAY"        envDefault:"1500ms"`
	ProcessDelay   time.Duration `env:"SIM_PROCESS_DELAY"    envDefault:"2s"`
	PlanDelay      time.Duration `env:"SIM_PLAN_DELAY"       envDefault:"1s"`
	StatusDelay    time.Duration `env:"SIM_STATUS_DELAY"     envDefault:"1s"`
	StatusInterval time.Duration `env:"SIM_STATUS_INTERVAL"  envDefault:"2s"`
	FeedInterval   time.Duration `env:"SIM_FEED_INTERVAL"    envDefault:"5s"`
	FaultFlows     []string      `env:"SIM_FAULT_FLOWS"      envSeparator:","`
}

// Load reads an optional .env file and then the process environment. A
// missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
