// Package session caches actor profiles for the lifetime of a sign-in.
// The original design read role state from ambient globals; here the
// cache is an explicit object with an init/clear lifecycle, injected
// into the auth middleware, so the policy stays testable without a live
// session. The profile store remains authoritative: a miss or a decode
// failure always falls through to the database.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clubhouse/internal/config"
	"clubhouse/internal/models"
	console "clubhouse/internal/utils/logger"
)

var log = console.New("SESSION")

type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache connects to redis and verifies the connection.
func NewProfileCache(cfg *config.Config) (*ProfileCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, log.Error("Failed to connect to redis", err)
	}

	log.Success("Profile cache connected")
	return &ProfileCache{client: client, ttl: cfg.Session.ProfileTTL}, nil
}

func profileKey(uid string) string {
	return fmt.Sprintf("profile:%s", uid)
}

// Get returns the cached profile for uid, or nil on a miss. Errors are
// logged and reported as a miss; the caller re-reads the profile store.
func (c *ProfileCache) Get(ctx context.Context, uid string) *models.User {
	data, err := c.client.Get(ctx, profileKey(uid)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn("Profile cache read failed for %s: %v", uid, err)
		}
		return nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Warn("Profile cache decode failed for %s: %v", uid, err)
		return nil
	}
	return &user
}

// Set stores the profile snapshot with the configured TTL.
func (c *ProfileCache) Set(ctx context.Context, user *models.User) {
	data, err := json.Marshal(user)
	if err != nil {
		log.Warn("Profile cache encode failed for %s: %v", user.ID, err)
		return
	}
	if err := c.client.Set(ctx, profileKey(user.ID), data, c.ttl).Err(); err != nil {
		log.Warn("Profile cache write failed for %s: %v", user.ID, err)
	}
}

// Clear drops the cached profile. Called on sign-out and whenever an
// admin changes a user's role, so stale privileges never outlive the
// TTL or the session, whichever ends first.
func (c *ProfileCache) Clear(ctx context.Context, uid string) {
	if err := c.client.Del(ctx, profileKey(uid)).Err(); err != nil {
		log.Warn("Profile cache clear failed for %s: %v", uid, err)
	}
}

// Close releases the redis connection.
func (c *ProfileCache) Close() error {
	return c.client.Close()
}
