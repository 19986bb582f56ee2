// Package dedupe filters redelivered events for at-least-once consumers.
//
// The pubsub service redelivers every event that was read but not committed.
// Handler wraps an events handler and skips events it has already processed
// successfully, committing them directly instead. Processed event IDs are kept
// in a Store scoped by (org, topic, subscription):
//
//	store := dedupe.NewMemoryStore(time.Hour)
//	defer store.Close()
//
//	handler := dedupe.Handler(store, dedupe.Scope("acme", "orders", "billing"), process)
//	c, err := consumer.New(pubsubClient, handler, cfg)
//
// MemoryStore is backed by github.com/jellydator/ttlcache/v3 and only protects a
// single process. RedisStore shares the keys between processes:
//
//	rdb, err := redis.Connect(ctx, redisCfg)
//	store := dedupe.NewRedisStore(rdb, 24*time.Hour)
//
// Filtering narrows the redelivery window; it does not make delivery exactly-once.
package dedupe
