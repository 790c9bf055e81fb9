package docstore

import "time"

const (
	EventDocCreated = "DocumentCreated"
	EventDocUpdated = "DocumentUpdated"
)

// Envelope is the change-feed event emitted after every write. Consumers
// only need to know which collection moved; subscribers re-query for the
// fresh snapshot themselves.
type Envelope struct {
	EventID    string    `json:"event_id"` // uuid
	EventType  string    `json:"event_type"`
	Collection string    `json:"collection"`
	DocID      string    `json:"doc_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Producer   string    `json:"producer"` // e.g., "lounge-api"
}

// Publisher fan-outs change envelopes to other instances. A nil publisher
// keeps the store purely local.
type Publisher interface {
	PublishChange(env Envelope)
}

// TopicFor maps a collection to its change-feed topic.
func TopicFor(collection string) string { return collection + ".changed" }

// PartitionKey keeps all events of one document in order.
func PartitionKey(docID string) []byte { return []byte(docID) }
