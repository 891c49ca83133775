package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/config"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/logger"
)

const (
	prefetch    = 16
	sendTimeout = 15 * time.Second
)

// email_worker drains the mail queue filled by the API's QueueNotifier and
// delivers each job over SMTP.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.NewConfig()
	appLogger := logger.NewZapLogger(cfg.IsProduction())
	defer func() { _ = appLogger.Sync() }()

	if !cfg.SendEmails {
		appLogger.Infof("SEND_EMAILS=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		appLogger.Fatalf("RabbitMQ not configured")
	}
	if cfg.EmailUsername == "" || cfg.EmailFrom == "" {
		appLogger.Fatalf("SMTP not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		appLogger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		appLogger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		appLogger.Fatalf("qos: %v", err)
	}
	if _, err := external_services.DeclareEmailQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		appLogger.Fatalf("%v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		appLogger.Fatalf("consume: %v", err)
	}

	mailer := external_services.NewEmailService(cfg.EmailHost, cfg.EmailPort, cfg.EmailUsername, cfg.EmailAppPassword, cfg.EmailFrom)
	ctx, cancelAll := context.WithCancel(context.Background())
	defer cancelAll()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			var job external_services.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				appLogger.Warnf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}
			subject, body, err := job.Resolve()
			if err != nil {
				appLogger.Warnf("render %s for %s failed: %v", job.Template, job.To, err)
				_ = msg.Nack(false, false)
				continue
			}

			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err = mailer.SendEmail(sendCtx, job.To, subject, body)
			cancel()
			if err != nil {
				appLogger.Errorf("send to %s failed: %v", job.To, err)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	appLogger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	appLogger.Infof("shutting down...")
	cancelAll()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}
