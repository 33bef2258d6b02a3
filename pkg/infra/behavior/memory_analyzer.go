package behavior

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type observation struct {
	at   time.Time
	path string
}

type window struct {
	mu       sync.Mutex
	entries  []observation
	lastSeen time.Time
	// evicted is set by the janitor once the window left the map; writers that
	// still hold a pointer to it must fetch a fresh one.
	evicted bool
}

// MemoryAnalyzer keeps one window per fingerprint in process memory. Each
// window has its own lock so unrelated fingerprints never contend.
type MemoryAnalyzer struct {
	logger  *logrus.Logger
	mu      sync.RWMutex
	windows map[string]*window
	opts    options
}

func NewMemoryAnalyzer(logger *logrus.Logger, opts ...Option) *MemoryAnalyzer {
	return &MemoryAnalyzer{
		logger:  logger,
		windows: make(map[string]*window),
		opts:    buildOptions(opts),
	}
}

func (a *MemoryAnalyzer) Analyze(_ context.Context, fingerprint, path string) (Label, error) {
	for {
		w := a.windowFor(fingerprint)
		w.mu.Lock()
		if w.evicted {
			w.mu.Unlock()
			continue
		}
		now := a.opts.now()
		w.entries = append(w.entries, observation{at: now, path: path})
		w.lastSeen = now
		w.entries = evictExpired(w.entries, now, a.opts.window)
		count, distinct := summarize(w.entries)
		w.mu.Unlock()
		return Classify(count, distinct), nil
	}
}

func (a *MemoryAnalyzer) windowFor(fingerprint string) *window {
	a.mu.RLock()
	w, ok := a.windows[fingerprint]
	a.mu.RUnlock()
	if ok {
		return w
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if w, ok = a.windows[fingerprint]; ok {
		return w
	}
	w = &window{}
	a.windows[fingerprint] = w
	return w
}

// Start runs the janitor until ctx is cancelled.
func (a *MemoryAnalyzer) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = a.opts.window / 2
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := a.Sweep(); removed > 0 && a.logger != nil {
					a.logger.WithField("removed", removed).Debug("evicted idle behavior windows")
				}
			}
		}
	}()
}

// Sweep drops fingerprints whose newest observation is older than the window.
func (a *MemoryAnalyzer) Sweep() int {
	now := a.opts.now()
	removed := 0

	a.mu.Lock()
	defer a.mu.Unlock()
	for fp, w := range a.windows {
		w.mu.Lock()
		if now.Sub(w.lastSeen) > a.opts.window {
			w.evicted = true
			delete(a.windows, fp)
			removed++
		}
		w.mu.Unlock()
	}
	return removed
}

// Len reports how many fingerprints are currently tracked.
func (a *MemoryAnalyzer) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.windows)
}

// evictExpired drops entries older than the window. Entries are appended in
// time order so the survivors form a suffix.
func evictExpired(entries []observation, now time.Time, window time.Duration) []observation {
	i := 0
	for i < len(entries) && now.Sub(entries[i].at) > window {
		i++
	}
	if i == 0 {
		return entries
	}
	kept := make([]observation, len(entries)-i)
	copy(kept, entries[i:])
	return kept
}

func summarize(entries []observation) (int, int) {
	paths := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		paths[e.path] = struct{}{}
	}
	return len(entries), len(paths)
}
