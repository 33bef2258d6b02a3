package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	appAlert "github.com/NeuralTrust/BotTracker/pkg/app/alert"
	"github.com/NeuralTrust/BotTracker/pkg/app/worker"
	"github.com/NeuralTrust/BotTracker/pkg/detection"
	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	alertMocks "github.com/NeuralTrust/BotTracker/pkg/domain/alert/mocks"
	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/NeuralTrust/BotTracker/pkg/infra/behavior"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryTrafficRepo keeps saved logs and applies the filter fields the
// alert checker relies on.
type memoryTrafficRepo struct {
	traffic.Repository
	mu   sync.Mutex
	logs []traffic.Log
}

func (r *memoryTrafficRepo) Save(_ context.Context, l *traffic.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *l)
	return nil
}

func (r *memoryTrafficRepo) Count(_ context.Context, f traffic.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, l := range r.logs {
		if f.UserID != nil && l.UserID != *f.UserID {
			continue
		}
		if f.DomainID != nil && l.DomainID != *f.DomainID {
			continue
		}
		if f.Since != nil && l.Timestamp.Before(*f.Since) {
			continue
		}
		if f.BotsOnly && l.DetectedBot == nil {
			continue
		}
		n++
	}
	return n, nil
}

// inlinePool runs every task before Enqueue returns.
type inlinePool struct{}

func (inlinePool) StartWorkers(int) {}
func (inlinePool) Shutdown()        {}
func (inlinePool) Enqueue(_ string, task worker.Task) bool {
	task(context.Background())
	return true
}

type countingNotifier struct {
	sent []alert.Notification
}

func (c *countingNotifier) Notify(_ context.Context, n alert.Notification) error {
	c.sent = append(c.sent, n)
	return nil
}

type windowFixture struct {
	f        *fixture
	repo     *memoryTrafficRepo
	notifier *countingNotifier
	now      time.Time
	ingestor Ingestor
}

func newWindowFixture(t *testing.T, rules []alert.Rule) *windowFixture {
	t.Helper()
	w := &windowFixture{
		f:        newFixture(),
		repo:     &memoryTrafficRepo{},
		notifier: &countingNotifier{},
		now:      time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	w.f.domains.On("GetVerifiedByName", mock.Anything, "example.com", w.f.key.UserID).Return(w.f.site, nil)

	ruleRepo := new(alertMocks.MockRepository)
	ruleRepo.On("ListActiveByUser", mock.Anything, w.f.key.UserID).Return(rules, nil)

	clock := func() time.Time { return w.now }
	checker := appAlert.NewChecker(logrus.New(), w.repo, ruleRepo, w.notifier, time.Hour, appAlert.WithClock(clock))

	ing := NewIngestor(
		logrus.New(),
		w.f.finder,
		w.f.domains,
		w.repo,
		detection.NewClassifier(nil),
		w.f.gate,
		behavior.NewMemoryAnalyzer(logrus.New(), behavior.WithClock(clock)),
		nil,
		nil,
		nil,
		checker,
		inlinePool{},
		Config{},
	)
	ing.(*ingestor).now = clock
	w.ingestor = ing
	return w
}

func (w *windowFixture) ingestAt(t *testing.T, offset time.Duration, userAgent string) *Result {
	t.Helper()
	w.now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC).Add(offset)
	ev := baseEvent()
	ev.UserAgent = userAgent
	res, err := w.ingestor.Ingest(context.Background(), ev)
	require.NoError(t, err)
	return res
}

const gptBotUA = "Mozilla/5.0 (compatible; GPTBot/1.0)"

func TestIngest_TrailingHourBotCount(t *testing.T) {
	twoHits := alert.Rule{ID: uuid.New(), AlertType: alert.TypeLog, Threshold: 2, IsActive: true}
	threeHits := alert.Rule{ID: uuid.New(), AlertType: alert.TypeLog, Threshold: 3, IsActive: true}
	w := newWindowFixture(t, []alert.Rule{twoHits, threeHits})

	first := w.ingestAt(t, 0, gptBotUA)
	require.NotNil(t, first.BotName)
	assert.Equal(t, "GPTBot", *first.BotName)
	assert.True(t, first.Confidence >= 0.7)
	assert.True(t, first.RiskLevel.AtLeast(detection.RiskMedium))
	assert.Empty(t, w.notifier.sent)

	w.ingestAt(t, 59*time.Minute, gptBotUA)
	require.Len(t, w.notifier.sent, 1)
	assert.Equal(t, twoHits.ID, w.notifier.sent[0].RuleID)
	assert.Equal(t, int64(2), w.notifier.sent[0].Count)

	// The first hit is now 61 minutes old and falls out of the window.
	w.ingestAt(t, 61*time.Minute, gptBotUA)
	require.Len(t, w.notifier.sent, 2)
	assert.Equal(t, twoHits.ID, w.notifier.sent[1].RuleID)
	assert.Equal(t, int64(2), w.notifier.sent[1].Count)
}

func TestIngest_HeadlessOnlyIsNotABotHit(t *testing.T) {
	oneHit := alert.Rule{ID: uuid.New(), AlertType: alert.TypeLog, Threshold: 1, IsActive: true}
	w := newWindowFixture(t, []alert.Rule{oneHit})

	res := w.ingestAt(t, 0, "Mozilla/5.0 HeadlessChrome/120.0")
	assert.True(t, res.Accepted)
	assert.False(t, res.BotDetected)
	assert.Equal(t, detection.RiskHigh, res.RiskLevel)
	assert.Empty(t, w.notifier.sent)

	require.Len(t, w.repo.logs, 1)
	assert.Nil(t, w.repo.logs[0].DetectedBot)
	assert.Equal(t, "high", w.repo.logs[0].RiskLevel)
}
