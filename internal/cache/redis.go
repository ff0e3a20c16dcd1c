package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Client wraps Redis for the tenant lookup cache and the session registry.
type Client struct {
	rdb *redis.Client
}

// NewClient connects to Redis and verifies the connection.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// New wraps an existing redis client.
func New(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func tenantKey(slug string) string {
	return fmt.Sprintf("tenant:slug:%s", slug)
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// GetTenant returns the cached tenant for a slug. A miss is (nil, false, nil).
func (c *Client) GetTenant(ctx context.Context, slug string) (*domain.Tenant, bool, error) {
	raw, err := c.rdb.Get(ctx, tenantKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var t domain.Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, false, fmt.Errorf("decode cached tenant: %w", err)
	}
	return &t, true, nil
}

func (c *Client) SetTenant(ctx context.Context, t *domain.Tenant, ttl time.Duration) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, tenantKey(t.Slug), raw, ttl).Err()
}

func (c *Client) InvalidateTenant(ctx context.Context, slug string) error {
	return c.rdb.Del(ctx, tenantKey(slug)).Err()
}

func (c *Client) RegisterSession(ctx context.Context, sessionID string, accountID uuid.UUID, ttl time.Duration) error {
	return c.rdb.Set(ctx, sessionKey(sessionID), accountID.String(), ttl).Err()
}

// LookupSession returns the account owning a live session.
func (c *Client) LookupSession(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	raw, err := c.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("decode session account: %w", err)
	}
	return id, true, nil
}

func (c *Client) RevokeSession(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
