package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"

	"github.com/mtorres/eventia/internal/core/model"
	"github.com/mtorres/eventia/internal/core/ports"
)

// SubscriberArgs contain the mandatory arguments to build a subscriber.
type SubscriberArgs struct {
	// Subscription is a pubsub subscription
	Subscription *pubsub.Subscription

	// Handler receives the decoded notification events.
	Handler ports.NotificationEventHandler
}

// Subscriber is a pubsub async subscriber of notification events.
type Subscriber struct {
	subscription *pubsub.Subscription
	handler      ports.NotificationEventHandler
}

// NewSubscriber creates a subscriber.
func NewSubscriber(args SubscriberArgs) *Subscriber {
	return &Subscriber{
		subscription: args.Subscription,
		handler:      args.Handler,
	}
}

// Consume starts the subscriber. This is a blocking method and should be
// started in its own go-routine. The way to terminate the method is to cancel
// the context in input.
func (s *Subscriber) Consume(ctx context.Context) error {
	if err := s.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		event, err := decodeMsgIntoNotificationEvent(msg)
		if err != nil {
			log.WithError(err).Error("error decoding message into notification event")
			msg.Nack()
			return
		}

		if err := s.handler.Handle(ctx, *event); err != nil {
			log.WithError(err).Error("error in notification event handler")
			msg.Nack()
		} else {
			msg.Ack()
		}
	}); err != nil {
		return fmt.Errorf("error receiving messages from subscription: %w", err)
	}
	return nil
}

func decodeMsgIntoNotificationEvent(msg *pubsub.Message) (*model.NotificationEvent, error) {
	if msg == nil {
		return nil, errors.New("cannot decode nil pubsub msg")
	}
	event := new(model.NotificationEvent)
	if err := json.Unmarshal(msg.Data, event); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	return event, nil
}
