package worker_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/app/worker"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestPool_RunsTasks(t *testing.T) {
	p := worker.NewPool(logrus.New(), 10, time.Second)
	p.StartWorkers(2)

	var done atomic.Int32
	for i := 0; i < 5; i++ {
		assert.True(t, p.Enqueue("test", func(ctx context.Context) { done.Add(1) }))
	}
	p.Shutdown()

	assert.Equal(t, int32(5), done.Load())
}

func TestPool_DropsWhenFull(t *testing.T) {
	p := worker.NewPool(logrus.New(), 1, time.Second)

	assert.True(t, p.Enqueue("test", func(ctx context.Context) {}))
	assert.False(t, p.Enqueue("test", func(ctx context.Context) {}))

	p.StartWorkers(1)
	p.Shutdown()
}

func TestPool_RejectsAfterShutdown(t *testing.T) {
	p := worker.NewPool(logrus.New(), 1, time.Second)
	p.StartWorkers(1)
	p.Shutdown()
	p.Shutdown()

	assert.False(t, p.Enqueue("test", func(ctx context.Context) {}))
}

func TestPool_TaskContextHasTimeout(t *testing.T) {
	p := worker.NewPool(logrus.New(), 1, 10*time.Millisecond)
	p.StartWorkers(1)

	var wg sync.WaitGroup
	wg.Add(1)
	var err error
	p.Enqueue("test", func(ctx context.Context) {
		defer wg.Done()
		<-ctx.Done()
		err = ctx.Err()
	})
	wg.Wait()
	p.Shutdown()

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_RecoversFromPanic(t *testing.T) {
	p := worker.NewPool(logrus.New(), 2, time.Second)
	p.StartWorkers(1)

	var ran atomic.Bool
	p.Enqueue("test", func(ctx context.Context) { panic("boom") })
	p.Enqueue("test", func(ctx context.Context) { ran.Store(true) })
	p.Shutdown()

	assert.True(t, ran.Load())
}
