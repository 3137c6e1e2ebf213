package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/internal/domain/notification/event"
	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/pkg/kafka"
	"github.com/Ltinterdonato1/BlinkShare/pkg/pubsub"
)

// runHubSubscriber pipes events from the message queue into the websocket
// hub. Each event carries the target user in its metadata; the hub delivers
// it to every open connection of that user.
func (s *srv) runHubSubscriber() {
	s.subscriber = kafka.NewSubscriber(
		"ws-proxy",
		[]string{s.configs.Kafka.Addr},
		[]string{model.NotificationTopic, model.ChatMessageTopic},
		func(ctx context.Context, pack *pubsub.Pack, t time.Time) {
			var ev event.EventRequest
			if err := json.Unmarshal(pack.Msg, &ev); err != nil {
				s.logger.Errorf("Cannot unmarshal event: %v", err)
				return
			}

			if ev.Metadata.To == "" {
				return
			}

			b, err := json.Marshal(event.Format(&ev, t.UnixMilli()))
			if err != nil {
				s.logger.Errorf("Cannot marshal event response: %v", err)
				return
			}

			s.hub.BroadcastToUser(ev.Metadata.To, b)
		},
	)

	s.subscriber.Subscribe(context.Background())
}
