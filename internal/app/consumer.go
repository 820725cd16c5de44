package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MuleAlemuB/project1-sub002/internal/config"
	"github.com/MuleAlemuB/project1-sub002/internal/department"
	"github.com/MuleAlemuB/project1-sub002/internal/events"
	"github.com/MuleAlemuB/project1-sub002/internal/messaging/kafka/consumer"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const departmentHeadcountGroup = "hrms-department-headcount"

// RunConsumer keeps department headcounts in sync with employee lifecycle
// events until interrupted.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return ErrKafkaBrokerRequired
	}

	gormDB, sqlDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// headcount changes invalidate the cached department list
	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	departmentRepo := department.NewRepository(gormDB)
	departmentService := department.NewService(sqlDB, departmentRepo, rdb, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        departmentHeadcountGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeEmployeeLifecycle(ctx, reader, departmentService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
