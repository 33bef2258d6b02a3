package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SaveAndGetApiKey(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	c := cache.NewClientFromRedis(redisClient)

	key := &apikey.APIKey{ID: uuid.New(), UserID: uuid.New(), Key: "abk_test", Name: "ci", Active: true}
	b, err := json.Marshal(key)
	require.NoError(t, err)

	mock.ExpectSet("apikey:abk_test", string(b), 5*time.Minute).SetVal("OK")
	mock.ExpectGet("apikey:abk_test").SetVal(string(b))

	require.NoError(t, c.SaveAPIKey(context.Background(), key, 5*time.Minute))
	got, err := c.GetApiKey(context.Background(), "abk_test")
	require.NoError(t, err)
	assert.Equal(t, key.ID, got.ID)
	assert.Equal(t, key.UserID, got.UserID)
	assert.True(t, got.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_GetApiKeyMiss(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	c := cache.NewClientFromRedis(redisClient)

	mock.ExpectGet("apikey:abk_missing").RedisNil()

	_, err := c.GetApiKey(context.Background(), "abk_missing")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestClient_BotPolicies(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	c := cache.NewClientFromRedis(redisClient)

	userID := uuid.New()
	policies := []policy.BotPolicy{{ID: uuid.New(), UserID: &userID, BotName: "GPTBot", Action: policy.ActionBlock}}
	b, err := json.Marshal(policies)
	require.NoError(t, err)

	mock.ExpectSet("botpolicies:"+userID.String(), string(b), time.Minute).SetVal("OK")
	mock.ExpectGet("botpolicies:" + userID.String()).SetVal(string(b))

	require.NoError(t, c.SaveBotPolicies(context.Background(), userID, policies, time.Minute))
	got, err := c.GetBotPolicies(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, policy.ActionBlock, got[0].Action)
}

func TestClient_DeleteByPattern(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	c := cache.NewClientFromRedis(redisClient)

	mock.ExpectScan(0, "botpolicies:*", 100).SetVal([]string{"botpolicies:a", "botpolicies:b"}, 7)
	mock.ExpectDel("botpolicies:a", "botpolicies:b").SetVal(2)
	mock.ExpectScan(7, "botpolicies:*", 100).SetVal([]string{}, 0)

	require.NoError(t, c.DeleteByPattern(context.Background(), "botpolicies:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_TTLMaps(t *testing.T) {
	redisClient, _ := redismock.NewClientMock()
	c := cache.NewClientFromRedis(redisClient)

	assert.Nil(t, c.GetTTLMap("x"))
	m := c.CreateTTLMap("x", time.Minute)
	assert.Same(t, m, c.GetTTLMap("x"))
	assert.Same(t, m, c.CreateTTLMap("x", time.Hour))

	m.Set("k", 1)
	c.ClearAllTTLMaps()
	assert.Equal(t, 0, m.Len())
}
