package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx"
	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx/mocks"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func notification(t alert.Type, dest string) alert.Notification {
	return alert.Notification{
		RuleID:      uuid.New(),
		TenantID:    uuid.New(),
		DomainID:    uuid.New(),
		Type:        t,
		Destination: dest,
		Threshold:   10,
		Count:       12,
		Window:      time.Hour,
		TriggeredAt: time.Now(),
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	err := Registry{}.Notify(context.Background(), notification(alert.TypeLog, ""))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLogNotifier(t *testing.T) {
	logger, hook := test.NewNullLogger()
	reg := Registry{alert.TypeLog: NewLogNotifier(logger)}

	require.NoError(t, reg.Notify(context.Background(), notification(alert.TypeLog, "")))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "12 AI bot requests")
}

func TestWebhookNotifier_Success(t *testing.T) {
	client := new(mocks.MockClient)
	client.On("PostJSON", mock.Anything, "https://hooks.example.com/a", mock.MatchedBy(func(b []byte) bool {
		var p webhookPayload
		return json.Unmarshal(b, &p) == nil && p.Count == 12 && p.WindowSecs == 3600
	})).Return(&httpx.Response{StatusCode: 204}, nil)

	n := NewWebhookNotifier(logrus.New(), client, time.Second, 3)
	assert.NoError(t, n.Notify(context.Background(), notification(alert.TypeWebhook, "https://hooks.example.com/a")))
	client.AssertExpectations(t)
}

func TestWebhookNotifier_StatusAndTransportFailures(t *testing.T) {
	client := new(mocks.MockClient)
	client.On("PostJSON", mock.Anything, "https://hooks.example.com/redirect", mock.Anything).
		Return(&httpx.Response{StatusCode: 302}, nil)
	client.On("PostJSON", mock.Anything, "https://down.example.com/", mock.Anything).
		Return(nil, errors.New("connection refused"))

	n := NewWebhookNotifier(logrus.New(), client, time.Second, 3)
	err := n.Notify(context.Background(), notification(alert.TypeWebhook, "https://hooks.example.com/redirect"))
	assert.ErrorContains(t, err, "status 302")

	err = n.Notify(context.Background(), notification(alert.TypeWebhook, "https://down.example.com/"))
	assert.ErrorContains(t, err, "connection refused")

	err = n.Notify(context.Background(), notification(alert.TypeWebhook, "::not a url"))
	assert.Error(t, err)
}

func TestWebhookNotifier_BreakerPerHost(t *testing.T) {
	client := new(mocks.MockClient)
	client.On("PostJSON", mock.Anything, "https://down.example.com/", mock.Anything).
		Return(nil, errors.New("connection refused"))
	client.On("PostJSON", mock.Anything, "https://up.example.com/", mock.Anything).
		Return(&httpx.Response{StatusCode: 200}, nil)

	n := NewWebhookNotifier(logrus.New(), client, time.Second, 1)
	_ = n.Notify(context.Background(), notification(alert.TypeWebhook, "https://down.example.com/"))
	err := n.Notify(context.Background(), notification(alert.TypeWebhook, "https://down.example.com/"))
	assert.True(t, httpx.IsOpen(err))

	assert.NoError(t, n.Notify(context.Background(), notification(alert.TypeWebhook, "https://up.example.com/")))
	client.AssertNumberOfCalls(t, "PostJSON", 2)
}

func TestWebhookNotifier_IdleBreakersExpire(t *testing.T) {
	client := new(mocks.MockClient)
	client.On("PostJSON", mock.Anything, mock.Anything, mock.Anything).
		Return(&httpx.Response{StatusCode: 200}, nil)

	n := NewWebhookNotifier(logrus.New(), client, time.Second, 3).(*webhookNotifier)
	n.breakers = cache.NewTTLMap(time.Millisecond)

	require.NoError(t, n.Notify(context.Background(), notification(alert.TypeWebhook, "https://a.example.com/")))
	require.NoError(t, n.Notify(context.Background(), notification(alert.TypeWebhook, "https://b.example.com/")))
	assert.LessOrEqual(t, n.breakers.Len(), 2)

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, n.Notify(context.Background(), notification(alert.TypeWebhook, "https://c.example.com/")))
	assert.Equal(t, 1, n.breakers.Len())
}

func TestEmailNotifier_Unconfigured(t *testing.T) {
	logger, hook := test.NewNullLogger()
	n := NewEmailNotifier(logger, SMTPConfig{})

	require.NoError(t, n.Notify(context.Background(), notification(alert.TypeEmail, "ops@example.com")))
	assert.Len(t, hook.Entries, 1)
}

func TestEmailNotifier_Sends(t *testing.T) {
	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	n := NewEmailNotifier(logrus.New(), SMTPConfig{Host: "smtp.example.com", From: "alerts@example.com"}).(*emailNotifier)
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	require.NoError(t, n.Notify(context.Background(), notification(alert.TypeEmail, "ops@example.com")))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"ops@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: AI bot traffic alert")
}

func TestEmailNotifier_RejectsHeaderInjection(t *testing.T) {
	n := NewEmailNotifier(logrus.New(), SMTPConfig{Host: "smtp.example.com", From: "a@example.com"})
	err := n.Notify(context.Background(), notification(alert.TypeEmail, "x@example.com\r\nBcc: y@example.com"))
	assert.Error(t, err)
}

func TestEmailNotifier_SendFailure(t *testing.T) {
	n := NewEmailNotifier(logrus.New(), SMTPConfig{Host: "smtp.example.com", From: "a@example.com"}).(*emailNotifier)
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("550 rejected") }

	err := n.Notify(context.Background(), notification(alert.TypeEmail, "ops@example.com"))
	assert.ErrorContains(t, err, "550 rejected")
}
