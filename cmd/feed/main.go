package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"stockpulse/feed/configs"
	"stockpulse/feed/internal/pipeline"
	"stockpulse/feed/internal/publish"
	"stockpulse/feed/internal/source"
	"stockpulse/feed/internal/storage"
	"stockpulse/feed/internal/update"
)

// consoleConsumer prints every delivered update and warns once per branch
// failure. It is the terminal stage of the stream.
type consoleConsumer struct {
	logger *logrus.Logger
}

func (c *consoleConsumer) OnUpdate(rec update.Record) {
	if rec.IsMention() {
		c.logger.Infof("New mention => %s", rec.MentionText)
		return
	}
	c.logger.Infof("New update => %s : %s", rec.Symbol, rec.Price.String())
}

func (c *consoleConsumer) OnError(kind pipeline.ErrorKind) {
	c.logger.Warnf("Connectivity degraded (%s), showing cached data", kind)
}

func main() {
	appConfig := configs.AppLoad()
	logger := configs.NewLogger()

	store, err := storage.NewClickHouseStore(appConfig.DBDSN)
	if err != nil {
		logger.Errorf("Failed to connect to ClickHouse: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	var publisher pipeline.Publisher
	if appConfig.Firehose.Enabled {
		kafkaPublisher, err := publish.NewKafkaPublisher(appConfig.Firehose.Broker, appConfig.Firehose.Topic, logger)
		if err != nil {
			logger.Errorf("Failed to create Kafka publisher: %v", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	quoteClient := source.NewHTTPQuoteClient(
		appConfig.Quote.APIURL,
		appConfig.Quote.APIKey,
		appConfig.Quote.RequestsPerSecond,
		logger,
	)
	quotes := source.NewQuoteSource(quoteClient, appConfig.Quote.Symbols, appConfig.Quote.PollInterval, logger)

	mentionStream := source.NewWSMentionStream(source.WSMentionStreamConfig{
		URL:             appConfig.Mention.WSURL,
		AuthToken:       appConfig.Mention.AuthToken,
		TrackedKeywords: appConfig.Mention.TrackedKeywords,
		Languages:       appConfig.Mention.Languages,
	}, logger)
	mentions := source.NewMentionSource(mentionStream, logger)

	p := pipeline.New(pipeline.Config{
		Quotes:       quotes,
		Mentions:     mentions,
		Store:        store,
		Publisher:    publisher,
		Keywords:     appConfig.Mention.TrackedKeywords,
		SampleWindow: appConfig.Pipeline.SampleWindow,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Feed started successfully")

	if err := p.Run(ctx, &consoleConsumer{logger: logger}); err != nil {
		logger.Errorf("Feed stopped with error: %v", err)
		os.Exit(1)
	}

	logger.Info("Feed shutdown complete")
}
