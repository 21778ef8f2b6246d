package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"

	"github.com/mtorres/eventia/internal/actors/httpapi"
	"github.com/mtorres/eventia/internal/actors/memory"
	produceractor "github.com/mtorres/eventia/internal/actors/pubsub/producer"
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

	userStore := memory.NewUserStore()
	eventStore := memory.NewEventStore()
	participationStore := memory.NewParticipationStore()
	engagementStore := memory.NewEngagementStore()
	notificationStore := memory.NewNotificationStore()

	notificationOpts := []usecase.NotificationsOptArgs{}
	if cfg.EmailDeliveryEnabled {
		client, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
		if err != nil {
			log.WithError(err).Error("could not initialize pubsub client")
			return err
		}
		defer client.Close()

		producer, err := produceractor.NewProducer(client.Topic(cfg.NotificationTopicID))
		if err != nil {
			log.WithError(err).Error("could not initialize notification producer")
			return err
		}
		notificationOpts = append(notificationOpts, usecase.WithSender(producer))
	}

	notifications := usecase.NewNotifications(usecase.NotificationsArgs{
		Store:  notificationStore,
		Roster: participationStore,
		Users:  userStore,
	}, notificationOpts...)
	directory := usecase.NewDirectory(usecase.DirectoryArgs{
		Store:    userStore,
		Recorder: notifications,
	})
	tracker := usecase.NewTracker(usecase.TrackerArgs{
		Store:     participationStore,
		Events:    eventStore,
		Directory: directory,
		Recorder:  notifications,
	})
	engagement := usecase.NewEngagement(usecase.EngagementArgs{
		Store:     engagementStore,
		Events:    eventStore,
		Directory: directory,
		Recorder:  notifications,
	})
	catalog := usecase.NewCatalog(usecase.CatalogArgs{
		Store:         eventStore,
		Participation: participationStore,
		Engagement:    engagementStore,
		Recorder:      notifications,
	})
	ranking := usecase.NewChatRanking(usecase.ChatRankingArgs{
		Roster:    participationStore,
		Directory: directory,
	})

	server := httpapi.NewServer(httpapi.ServerArgs{
		Directory:     directory,
		Catalog:       catalog,
		Tracker:       tracker,
		Engagement:    engagement,
		Notifications: notifications,
		Ranking:       ranking,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	log.
		WithField("http-server-addr", cfg.HTTPAddr).
		Info("server up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the server")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	// Stop server
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
