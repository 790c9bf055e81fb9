package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
	"github.com/bumblebee-lounge/lounge-api/internal/redisx"
)

// Service consumes change-feed envelopes and pokes the local hub so
// subscribers re-query. Events from this very instance arrive too; the
// extra re-query they cause is harmless.
type Service struct {
	Hub         *docstore.Hub
	Redis       *redis.Client
	ServiceName string
}

// HandleChange is wired as the consumer handler.
func (s *Service) HandleChange(ctx context.Context, m kafkago.Message) error {
	var env docstore.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.Collection == "" {
		return nil
	}

	// dedup by event_id so replays after a restart stay cheap
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	s.Hub.Notify(env.Collection)
	return nil
}
