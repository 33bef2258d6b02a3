package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	siteMocks "github.com/NeuralTrust/BotTracker/pkg/domain/site/mocks"
	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx"
	httpMocks "github.com/NeuralTrust/BotTracker/pkg/infra/httpx/mocks"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	records map[string][]string
}

func (f fakeResolver) LookupTXT(_ context.Context, name string) ([]string, error) {
	if r, ok := f.records[name]; ok {
		return r, nil
	}
	return nil, errors.New("no such host")
}

func testDomain() *site.Domain {
	return &site.Domain{ID: uuid.New(), UserID: uuid.New(), Name: "example.com", VerificationToken: "tok123"}
}

func TestVerifier_DNS(t *testing.T) {
	client := new(httpMocks.MockClient)
	v := NewVerifier(logrus.New(), fakeResolver{records: map[string][]string{
		"example.com": {"v=spf1 -all", "aibot-detect=tok123"},
	}}, client, time.Second)

	ok, method := v.Verify(context.Background(), testDomain())
	assert.True(t, ok)
	assert.Equal(t, MethodDNS, method)
	client.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestVerifier_FileFallback(t *testing.T) {
	client := new(httpMocks.MockClient)
	client.On("Get", mock.Anything, "https://example.com/.well-known/aibot-detect.txt").
		Return(&httpx.Response{StatusCode: 200, Body: []byte("tok123\n")}, nil)

	v := NewVerifier(logrus.New(), fakeResolver{records: map[string][]string{
		"example.com": {"aibot-detect=other"},
	}}, client, time.Second)

	ok, method := v.Verify(context.Background(), testDomain())
	assert.True(t, ok)
	assert.Equal(t, MethodFile, method)
}

func TestVerifier_Fails(t *testing.T) {
	tests := []struct {
		name string
		resp *httpx.Response
		err  error
	}{
		{"not found", &httpx.Response{StatusCode: 404, Body: []byte("tok123")}, nil},
		{"wrong token", &httpx.Response{StatusCode: 200, Body: []byte("nope")}, nil},
		{"transport", nil, errors.New("timeout")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(httpMocks.MockClient)
			client.On("Get", mock.Anything, mock.Anything).Return(tt.resp, tt.err)
			v := NewVerifier(logrus.New(), fakeResolver{}, client, time.Second)

			ok, method := v.Verify(context.Background(), testDomain())
			assert.False(t, ok)
			assert.Empty(t, method)
		})
	}
}

type stubVerifier struct {
	ok     bool
	method string
}

func (s stubVerifier) Verify(context.Context, *site.Domain) (bool, string) {
	return s.ok, s.method
}

func TestService_VerifyDomain(t *testing.T) {
	d := testDomain()
	repo := new(siteMocks.MockRepository)
	repo.On("GetOwned", mock.Anything, d.ID, d.UserID).Return(d, nil)
	repo.On("MarkVerified", mock.Anything, d.ID, mock.AnythingOfType("time.Time")).Return(nil)

	out, err := NewService(repo, stubVerifier{ok: true, method: MethodDNS}).VerifyDomain(context.Background(), d.ID, d.UserID)
	require.NoError(t, err)
	assert.Equal(t, &Outcome{Verified: true, Method: MethodDNS}, out)
	repo.AssertExpectations(t)
}

func TestService_AlreadyVerified(t *testing.T) {
	d := testDomain()
	d.IsVerified = true
	repo := new(siteMocks.MockRepository)
	repo.On("GetOwned", mock.Anything, d.ID, d.UserID).Return(d, nil)

	out, err := NewService(repo, stubVerifier{}).VerifyDomain(context.Background(), d.ID, d.UserID)
	require.NoError(t, err)
	assert.True(t, out.Verified)
	repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_FailedVerification(t *testing.T) {
	d := testDomain()
	repo := new(siteMocks.MockRepository)
	repo.On("GetOwned", mock.Anything, d.ID, d.UserID).Return(d, nil)

	out, err := NewService(repo, stubVerifier{}).VerifyDomain(context.Background(), d.ID, d.UserID)
	require.NoError(t, err)
	assert.False(t, out.Verified)
	assert.NotEmpty(t, out.Message)
}

func TestService_UnknownDomain(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	repo := new(siteMocks.MockRepository)
	repo.On("GetOwned", mock.Anything, id, owner).Return(nil, domainErrors.NewNotFoundError("domain", id))

	_, err := NewService(repo, stubVerifier{}).VerifyDomain(context.Background(), id, owner)
	assert.ErrorIs(t, err, domainErrors.ErrEntityNotFound)
}
