package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

const (
	TopicCommentAdded      = "engagement.comment.added"
	TopicCommentDeleted    = "engagement.comment.deleted"
	TopicLikeToggled       = "engagement.like.toggled"
	TopicFollowToggled     = "engagement.follow.toggled"
	TopicGameFollowToggled = "engagement.game_follow.toggled"
	TopicViewsIncremented  = "engagement.views.incremented"
)

var Topics = []string{
	TopicCommentAdded,
	TopicCommentDeleted,
	TopicLikeToggled,
	TopicFollowToggled,
	TopicGameFollowToggled,
	TopicViewsIncremented,
}

// Engagement describes one applied mutation. Active is the state after the
// mutation for toggles, and true for additions.
type Engagement struct {
	Topic     string    `json:"topic"`
	Kind      string    `json:"kind"`
	SubjectID string    `json:"subject_id"`
	ActorID   string    `json:"actor_id"`
	TargetID  string    `json:"target_id,omitempty"`
	Active    bool      `json:"active"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(evt Engagement) error
}

// Bus is an in-process pub/sub for engagement events.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, NewLogger()),
	}
}

func (v *Bus) Publish(evt Engagement) error {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	payload, err := jsoniter.Marshal(evt)
	if err != nil {
		return fmt.Errorf("unable to encode event: %v", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return v.pubsub.Publish(evt.Topic, msg)
}

// Listen delivers events of the topics to the handler until ctx is done.
// A handler error nacks the message, which redelivers it.
func (v *Bus) Listen(ctx context.Context, handler func(Engagement) error, topics ...string) error {
	for _, topic := range topics {
		messages, err := v.pubsub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("unable to subscribe %s: %v", topic, err)
		}
		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				var evt Engagement
				if err := jsoniter.Unmarshal(msg.Payload, &evt); err != nil {
					log.Error().Err(err).Str("topic", topic).Msg("An error occurred when decoding event...")
					msg.Ack()
					continue
				}
				if err := handler(evt); err != nil {
					log.Error().Err(err).Str("topic", topic).Msg("An error occurred when handling event...")
					msg.Nack()
					continue
				}
				msg.Ack()
			}
		}(topic, messages)
	}
	return nil
}

func (v *Bus) Close() error {
	return v.pubsub.Close()
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(Engagement) error { return nil }
