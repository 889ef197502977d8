package database

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
)

// NewRedis connects the pub/sub backbone used for realtime fan-out and
// verifies the server is actually reachable before handing it out.
func NewRedis(ctx context.Context, addr string, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// NewMemcached returns the shared cache for organization directory lookups.
func NewMemcached(server string) *memcache.Client {
	return memcache.New(server)
}
