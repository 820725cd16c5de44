package producer

import (
	"context"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize     = 50
	purgeInterval = time.Hour
	sentRetention = 7 * 24 * time.Hour
)

// ProcessOutboxEvents polls the outbox every pollInterval and publishes due
// events. Delivered rows older than sentRetention are purged hourly.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	purge := time.NewTicker(purgeInterval)
	defer purge.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := processPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		case <-purge.C:
			purgeSentEvents(ctx, repo, time.Now().Add(-sentRetention), log)
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	logger.Info("processing pending outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}

func purgeSentEvents(ctx context.Context, repo kafka.OutboxRepository, before time.Time, logger *zap.Logger) {
	n, err := repo.PurgeSent(ctx, before)
	if err != nil {
		logger.Error("purge sent outbox events failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("purged sent outbox events", zap.Int64("count", n), zap.Time("before", before))
	}
}
