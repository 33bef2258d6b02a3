package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ApiKeyPattern      = "apikey:%s"
	BotPoliciesPattern = "botpolicies:%s"

	ApiKeyTTLName    = "api_key"
	BotPolicyTTLName = "bot_policy"
	GeoTTLName       = "geo"
)

type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	RedisClient() *redis.Client
	CreateTTLMap(name string, ttl time.Duration) *TTLMap
	GetTTLMap(name string) *TTLMap
	ClearAllTTLMaps()

	GetApiKey(ctx context.Context, key string) (*apikey.APIKey, error)
	SaveAPIKey(ctx context.Context, key *apikey.APIKey, expiration time.Duration) error
	GetBotPolicies(ctx context.Context, userID uuid.UUID) ([]policy.BotPolicy, error)
	SaveBotPolicies(ctx context.Context, userID uuid.UUID, policies []policy.BotPolicy, expiration time.Duration) error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

type client struct {
	redisClient *redis.Client
	ttlMaps     sync.Map
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	redisClient := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host":  config.Host,
			"port":  config.Port,
			"error": err.Error(),
		}).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
	}).Info("redis connected successfully")

	return NewClientFromRedis(redisClient), nil
}

// NewClientFromRedis wraps an existing connection without pinging it.
func NewClientFromRedis(redisClient *redis.Client) Client {
	return &client{redisClient: redisClient}
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.redisClient.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("error scanning keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("error deleting keys: %w", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}

func (c *client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	ttlMap := NewTTLMap(ttl)
	actual, _ := c.ttlMaps.LoadOrStore(name, ttlMap)
	existing, err := safeTTLMapCast(actual)
	if err != nil {
		c.ttlMaps.Store(name, ttlMap)
		return ttlMap
	}
	return existing
}

func (c *client) GetTTLMap(name string) *TTLMap {
	if value, ok := c.ttlMaps.Load(name); ok {
		ttlMap, err := safeTTLMapCast(value)
		if err != nil {
			return nil
		}
		return ttlMap
	}
	return nil
}

func (c *client) ClearAllTTLMaps() {
	c.ttlMaps.Range(func(key, value interface{}) bool {
		if ttlMap, ok := value.(*TTLMap); ok {
			ttlMap.Clear()
		}
		return true
	})
}

func (c *client) GetApiKey(ctx context.Context, key string) (*apikey.APIKey, error) {
	res, err := c.Get(ctx, fmt.Sprintf(ApiKeyPattern, key))
	if err != nil {
		return nil, err
	}
	apiKey := new(apikey.APIKey)
	if err := json.Unmarshal([]byte(res), apiKey); err != nil {
		return nil, err
	}
	return apiKey, nil
}

func (c *client) SaveAPIKey(ctx context.Context, key *apikey.APIKey, expiration time.Duration) error {
	b, err := json.Marshal(key)
	if err != nil {
		return err
	}
	return c.Set(ctx, fmt.Sprintf(ApiKeyPattern, key.Key), string(b), expiration)
}

func (c *client) GetBotPolicies(ctx context.Context, userID uuid.UUID) ([]policy.BotPolicy, error) {
	res, err := c.Get(ctx, fmt.Sprintf(BotPoliciesPattern, userID))
	if err != nil {
		return nil, err
	}
	var policies []policy.BotPolicy
	if err := json.Unmarshal([]byte(res), &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

func (c *client) SaveBotPolicies(
	ctx context.Context,
	userID uuid.UUID,
	policies []policy.BotPolicy,
	expiration time.Duration,
) error {
	b, err := json.Marshal(policies)
	if err != nil {
		return err
	}
	return c.Set(ctx, fmt.Sprintf(BotPoliciesPattern, userID), string(b), expiration)
}

// IsMiss reports whether err only means the key is absent.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

func safeTTLMapCast(value interface{}) (*TTLMap, error) {
	ttlMap, ok := value.(*TTLMap)
	if !ok {
		return nil, fmt.Errorf("invalid type assertion to TTLMap")
	}
	return ttlMap, nil
}
