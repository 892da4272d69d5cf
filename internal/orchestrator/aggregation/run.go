package aggregation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"app/internal/config"
	"app/internal/model"
	"app/internal/pgmq"

	"github.com/rs/zerolog"
)

// StatsSource computes the live monthly aggregate for a user.
type StatsSource interface {
	MonthlyStats(ctx context.Context, userID string, year, month int) (*model.MonthlyStats, error)
}

// SnapshotStore persists refreshed monthly snapshots.
type SnapshotStore interface {
	Upsert(ctx context.Context, m *model.MonthlyReport) error
}

// Processor refreshes one monthly snapshot per aggregation job.
type Processor struct {
	stats     StatsSource
	snapshots SnapshotStore
}

func NewProcessor(stats StatsSource, snapshots SnapshotStore) *Processor {
	return &Processor{stats: stats, snapshots: snapshots}
}

// Process recomputes the month named by the payload from the daily reports
// and writes it to the snapshot store. Bad payloads are not retryable.
func (p *Processor) Process(ctx context.Context, data []byte) error {
	var job model.AggregationJob
	if err := json.Unmarshal(data, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if job.UserID == "" || job.Month < 1 || job.Month > 12 {
		return fmt.Errorf("%w: user_id=%q year=%d month=%d", ErrBadPayload, job.UserID, job.Year, job.Month)
	}

	stats, err := p.stats.MonthlyStats(ctx, job.UserID, job.Year, job.Month)
	if err != nil {
		return fmt.Errorf("failed to compute monthly stats: %w", err)
	}

	snapshot := &model.MonthlyReport{
		UserID:          job.UserID,
		Year:            job.Year,
		Month:           job.Month,
		WorkingDays:     stats.WorkingDays,
		TotalDistance:   stats.TotalDistance,
		TotalDeliveries: stats.TotalDeliveries,
		TotalHighwayFee: stats.TotalHighwayFee,
		TotalHours:      stats.TotalHours,
	}
	if err := p.snapshots.Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to upsert monthly snapshot: %w", err)
	}
	return nil
}

// ErrBadPayload marks a message that can never succeed and must not retry.
var ErrBadPayload = errors.New("bad aggregation payload")

// Run starts the aggregation orchestrator.
func Run(ctx context.Context, logger zerolog.Logger, cfg *config.Config, client *pgmq.Client, proc *Processor) error {
	queue := cfg.AggregationQueueName
	logger.Info().Str("queue", queue).Msg("Starting aggregation orchestrator")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutting down aggregation orchestrator")
			return nil
		default:
		}

		msgs, err := client.ReadWithPoll(ctx, queue, cfg.AggregationPollTimeoutSec, cfg.AggregationPollMaxMsg)
		if err != nil {
			logger.Error().Err(err).Msg("Error reading aggregation queue")
			time.Sleep(time.Second)
			continue
		}
		if len(msgs) == 0 {
			continue
		}

		msg := msgs[0]
		logger.Info().Int64("msg_id", msg.ID).Msgf("Received aggregation job: %s", string(msg.Data))

		// Process with retry/backoff; bad payloads are dropped immediately.
		backoff := time.Duration(cfg.AggregationBackoffInitialSec) * time.Second
		var procErr error
		for attempt := 1; attempt <= cfg.AggregationMaxRetries; attempt++ {
			procErr = proc.Process(ctx, msg.Data)
			if procErr == nil {
				break
			}
			if errors.Is(procErr, ErrBadPayload) {
				break
			}
			logger.Error().Err(procErr).Int("attempt", attempt).Msg("Aggregation job failed, retrying")
			time.Sleep(backoff)
			backoff *= 2
			if backoff > time.Duration(cfg.AggregationBackoffMaxSec)*time.Second {
				backoff = time.Duration(cfg.AggregationBackoffMaxSec) * time.Second
			}
		}

		if procErr != nil {
			if errors.Is(procErr, ErrBadPayload) {
				logger.Error().Err(procErr).Msg("Unprocessable aggregation payload; deleting message")
			} else {
				// Exhausted retries; park the job on the dead-letter queue.
				dlq := cfg.AggregationDeadLetterQueueName
				if err := client.Send(ctx, dlq, msg.Data); err != nil {
					logger.Error().Err(err).Str("dlq", dlq).Msg("Failed to send message to dead-letter queue")
				}
				logger.Warn().
					Int("attempts", cfg.AggregationMaxRetries).
					Err(procErr).
					Msg("Exhausted all aggregation retries; moving job to DLQ")
			}
		}

		if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
			logger.Error().Err(err).Msg("Error deleting aggregation message")
		}
	}
}
