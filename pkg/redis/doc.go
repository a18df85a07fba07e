// Package redis connects to Redis with retries and exposes a health probe.
// The site uses it only to share rate limit buckets between replicas.
package redis
