package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/config"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
	"github.com/oksasatya/six-cities-api/pkg/mailer"
	mailtpl "github.com/oksasatya/six-cities-api/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	// prefetch keeps dispatch fair across workers
	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			handle(context.Background(), logger, mg, msg)
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle renders and sends one job. Malformed jobs are dropped, send failures requeued.
func handle(ctx context.Context, logger logrus.FieldLogger, sender mailer.Sender, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		helpers.LogWarn(logger, "bad message", err, nil)
		_ = msg.Nack(false, false)
		return
	}

	subject, text, html, err := mailer.Prepare(&job, mailtpl.Render)
	if err != nil {
		helpers.LogWarn(logger, "render failed", err, logrus.Fields{"template": job.Template})
		_ = msg.Nack(false, false)
		return
	}
	if job.To == "" {
		logger.Warn("job without recipient dropped")
		_ = msg.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(logger, "send failed", err, logrus.Fields{"to": job.To})
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
	logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
}
