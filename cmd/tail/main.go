package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"

	"stockpulse/feed/configs"
	"stockpulse/feed/internal/update"
)

// tail follows the firehose topic and prints every mirrored record. Useful
// for checking what downstream consumers actually see.
func main() {
	appConfig := configs.AppLoad()
	logger := configs.NewLogger()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{appConfig.Firehose.Broker},
		Topic:    appConfig.Firehose.Topic,
		GroupID:  appConfig.Firehose.GroupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("Tailing %s on %s", appConfig.Firehose.Topic, appConfig.Firehose.Broker)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Tail shutdown complete")
				return
			}
			logger.Errorf("Read failed: %v", err)
			os.Exit(1)
		}

		var rec update.Record
		if err := json.Unmarshal(msg.Value, &rec); err != nil {
			logger.Warnf("Skipping undecodable message at offset %d: %v", msg.Offset, err)
			continue
		}

		if rec.IsMention() {
			logger.Infof("[%d] mention: %s", msg.Offset, rec.MentionText)
		} else {
			logger.Infof("[%d] %s = %s at %s", msg.Offset, rec.Symbol, rec.Price.String(), rec.Timestamp.Format("15:04:05"))
		}
	}
}
