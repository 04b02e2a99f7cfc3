package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nidhidattani13/ems/internal/attendance"
	"github.com/nidhidattani13/ems/internal/leave"
	"github.com/nidhidattani13/ems/internal/leavepolicy"
	"github.com/nidhidattani13/ems/internal/messaging/kafka"
	"github.com/nidhidattani13/ems/internal/messaging/kafka/producer"
	"github.com/nidhidattani13/ems/internal/shared/clock"
	"github.com/nidhidattani13/ems/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker hosts the two background loops: the outbox publisher and
// the 18:00 attendance auto-closer.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	clk := clock.New()
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leavePolicyRepo := leavepolicy.NewRepository(gormDB)
	ledger := leave.NewLedger(leaveRepo, leavePolicyRepo)
	attendanceService := attendance.NewService(sqlDB, attendanceRepo, ledger, clk)
	autoCloser := attendance.NewAutoCloser(attendanceService, clk)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)
	go autoCloser.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
