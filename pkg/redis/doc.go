// Package redis connects to Redis with retries and provides a health check
// for readiness probes. The returned client backs tokenstore.RedisStore.
package redis
