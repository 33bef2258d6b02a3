package worker

import (
	"context"
	"sync"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	DefaultQueueSize   = 1000
	DefaultTaskTimeout = 30 * time.Second
)

// Task is a unit of background work. The context is cancelled after the
// pool's task timeout or on shutdown.
type Task func(ctx context.Context)

//go:generate mockery --name=Pool --dir=. --output=./mocks --filename=pool_mock.go --case=underscore --with-expecter
type Pool interface {
	StartWorkers(n int)
	// Enqueue schedules task without blocking. It returns false when the
	// task was dropped because the queue is full or the pool is shut down.
	Enqueue(kind string, task Task) bool
	Shutdown()
}

type pool struct {
	logger      *logrus.Logger
	taskChan    chan Task
	ctx         context.Context
	cancel      context.CancelFunc
	taskTimeout time.Duration
	mu          sync.RWMutex
	closed      bool
	wg          sync.WaitGroup
}

func NewPool(logger *logrus.Logger, queueSize int, taskTimeout time.Duration) Pool {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if taskTimeout <= 0 {
		taskTimeout = DefaultTaskTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &pool{
		logger:      logger,
		taskChan:    make(chan Task, queueSize),
		ctx:         ctx,
		cancel:      cancel,
		taskTimeout: taskTimeout,
	}
}

func (p *pool) StartWorkers(n int) {
	p.logger.WithField("workers", n).Info("starting background workers")
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.taskChan {
				p.run(task)
			}
		}()
	}
}

func (p *pool) run(task Task) {
	ctx, cancel := context.WithTimeout(p.ctx, p.taskTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("panic", r).Error("background task panicked")
		}
	}()
	task(ctx)
}

func (p *pool) Enqueue(kind string, task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.taskChan <- task:
		return true
	default:
		prometheus.DroppedTasksTotal.WithLabelValues(kind).Inc()
		p.logger.WithField("kind", kind).Warn("task queue is full, dropping task")
		return false
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
func (p *pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.taskChan)
	p.mu.Unlock()

	p.logger.Info("draining background workers")
	p.wg.Wait()
	p.cancel()
	p.logger.Info("background workers stopped")
}
