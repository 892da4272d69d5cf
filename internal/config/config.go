package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	Environment        string `envconfig:"ENV" default:"development"`
	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret          string `envconfig:"SUPABASE_JWT_SECRET" required:"true"`

	// Aggregation orchestrator settings
	AggregationQueueName           string `envconfig:"AGGREGATION_QUEUE_NAME" default:"aggregation_queue"`
	AggregationPollTimeoutSec      int    `envconfig:"AGGREGATION_POLL_TIMEOUT_SEC" default:"30"`
	AggregationPollMaxMsg          int    `envconfig:"AGGREGATION_POLL_MAX_MSG" default:"1"`
	AggregationMaxRetries          int    `envconfig:"AGGREGATION_MAX_RETRIES" default:"5"`
	AggregationBackoffInitialSec   int    `envconfig:"AGGREGATION_BACKOFF_INITIAL_SEC" default:"1"`
	AggregationBackoffMaxSec       int    `envconfig:"AGGREGATION_BACKOFF_MAX_SEC" default:"60"`
	AggregationDeadLetterQueueName string `envconfig:"AGGREGATION_DEAD_LETTER_QUEUE_NAME" default:"aggregation_queue_dlq"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
