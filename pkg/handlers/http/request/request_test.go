package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateAPIKeyRequest_Validate(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	assert.Error(t, (&CreateAPIKeyRequest{Name: " "}).Validate())
	assert.Error(t, (&CreateAPIKeyRequest{Name: "prod", ExpiresAt: &past}).Validate())
	assert.NoError(t, (&CreateAPIKeyRequest{Name: "prod"}).Validate())
}

func TestTrafficLogRequest_Validate(t *testing.T) {
	assert.EqualError(t, (&TrafficLogRequest{Domain: "example.com"}).Validate(), "api_key is required")
	assert.EqualError(t, (&TrafficLogRequest{APIKey: "abk_x"}).Validate(), "domain is required")
	assert.NoError(t, (&TrafficLogRequest{APIKey: "abk_x", Domain: "example.com"}).Validate())
}

func TestBlogPostRequest_Validate(t *testing.T) {
	assert.Error(t, (&BlogPostRequest{Content: "body"}).Validate())
	assert.Error(t, (&BlogPostRequest{Title: "t", Content: "body", Tags: []string{"ok", " "}}).Validate())
	assert.NoError(t, (&BlogPostRequest{Title: "t", Content: "body", Tags: []string{"ok"}}).Validate())
}

func TestUpsertPolicyRequest_Validate(t *testing.T) {
	assert.Error(t, (&UpsertPolicyRequest{Action: "block"}).Validate())
	assert.Error(t, (&UpsertPolicyRequest{BotName: "GPTBot"}).Validate())
	assert.NoError(t, (&UpsertPolicyRequest{BotName: "GPTBot", Action: "block"}).Validate())
}
