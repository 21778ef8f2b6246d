package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"

	"github.com/mtorres/eventia/internal/actors/mail"
	subscriberactor "github.com/mtorres/eventia/internal/actors/pubsub/subscriber"
	"github.com/mtorres/eventia/internal/config"
	"github.com/mtorres/eventia/internal/core/usecase"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)
}

func run() error {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("could not load configuration")
		return err
	}
	log.SetLevel(cfg.ParseLevel())

	client, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
	if err != nil {
		return err
	}
	defer client.Close()

	deliverer := usecase.NewDeliverer(mail.NewLogGateway())

	subscription := client.Subscription(cfg.NotificationSubscriptionID)
	subscriber := subscriberactor.NewSubscriber(subscriberactor.SubscriberArgs{
		Handler:      deliverer,
		Subscription: subscription,
	})

	// start subscriber
	go func(ctx context.Context) {
		if err := subscriber.Consume(ctx); err != nil {
			panic(err)
		}
	}(ctx)

	log.
		WithField("subscription", cfg.NotificationSubscriptionID).
		Info("worker up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the worker")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	return nil
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
