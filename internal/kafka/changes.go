package kafka

import (
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
)

// ChangeFeed publishes docstore change envelopes on the per-collection
// topics. It implements docstore.Publisher.
type ChangeFeed struct {
	P *Producer
}

func (f ChangeFeed) PublishChange(env docstore.Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		return
	}
	f.P.Publish(docstore.TopicFor(env.Collection), docstore.PartitionKey(env.DocID), b,
		kafka.Header{Key: "x-event-type", Value: []byte(env.EventType)},
	)
}
