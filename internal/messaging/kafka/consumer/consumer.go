package consumer

import (
	"context"
	"encoding/json"

	"github.com/MuleAlemuB/project1-sub002/internal/events"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// HeadcountUpdater recomputes a department's stored employee count.
type HeadcountUpdater interface {
	RecountEmployees(ctx context.Context, id uuid.UUID) (int64, error)
}

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	departments HeadcountUpdater,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		if err := handleEmployeeLifecycle(ctx, msg, departments, log); err != nil {
			// left uncommitted; redelivered after a restart or rebalance
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

func handleEmployeeLifecycle(
	ctx context.Context,
	msg kafkago.Message,
	departments HeadcountUpdater,
	log *zap.Logger,
) error {
	var event events.EmployeeLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee lifecycle event failed", zap.Error(err))
		return nil
	}

	for _, raw := range event.AffectedDepartments() {
		deptID, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("skip malformed department id", zap.String("department_id", raw))
			continue
		}

		count, err := departments.RecountEmployees(ctx, deptID)
		if err != nil {
			log.Error("recount department employees failed",
				zap.String("department_id", raw),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			return err
		}

		log.Info("department headcount updated",
			zap.String("event_type", event.EventType),
			zap.String("department_id", raw),
			zap.Int64("employee_count", count),
		)
	}

	return nil
}
