// Package ratelimiter implements a token bucket limiter with pluggable storage.
//
// A Bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Rejected requests do not drain the bucket further.
// MemoryStore serves a single instance; RedisStore runs the same algorithm as
// a Lua script so several replicas share one budget per key.
//
//	store := ratelimiter.NewMemoryStore()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ByIP)).Post("/contact", submit)
//
// Middleware sets X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset
// and, for rejected requests, Retry-After.
package ratelimiter
