package redisx

import "time"

const (
	// Session cart: cart:{session_id} -> JSON line array
	KeyCart = "cart:%s"

	// Dedup change-feed processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCart  = 24 * time.Hour
	TTLDedup = 48 * time.Hour
)
