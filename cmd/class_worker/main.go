package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/Renanf68/nlw2-server/config"
	"github.com/Renanf68/nlw2-server/internal/application"
	"github.com/Renanf68/nlw2-server/internal/indexer"
	"github.com/Renanf68/nlw2-server/pkg/helpers"
	"github.com/Renanf68/nlw2-server/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQClassQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ix := &indexer.Indexer{Index: cfg.ESClassesIndex, Logger: logger}
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.Fatalf("elasticsearch: %v", err)
		}
		if err := helpers.EnsureIndex(ctx, es, cfg.ESClassesIndex, indexer.ClassesMapping); err != nil {
			logger.Fatalf("ensure index %s: %v", cfg.ESClassesIndex, err)
		}
		ix.ES = es
	}
	if cfg.MailgunEnabled() {
		ix.Notifier = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, "class-created")
		ix.NotifyTo = cfg.MailgunNotifyTo
	} else {
		logger.Info("mailgun not configured; class notices disabled")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareTopicExchange(ch, cfg.RabbitMQExchange); err != nil {
		logger.Fatal(err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQClassQueue, true, false, false, false, nil); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	if err := ch.QueueBind(cfg.RabbitMQClassQueue, application.RoutingKeyClassCreated, cfg.RabbitMQExchange, false, nil); err != nil {
		logger.Fatalf("queue bind: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQClassQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			err := ix.Handle(ctx, msg.Body)
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, indexer.ErrBadMessage):
				logger.WithError(err).Warn("dropping class event")
				_ = msg.Nack(false, false)
			default:
				logger.WithError(err).Error("class event failed; requeueing")
				_ = msg.Nack(false, true)
			}
		}
	}()

	logger.Infof("class worker listening on queue=%s exchange=%s", cfg.RabbitMQClassQueue, cfg.RabbitMQExchange)
	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case <-done:
		logger.Warn("delivery channel closed")
	}
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
