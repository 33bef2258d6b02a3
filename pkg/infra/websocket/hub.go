package websocket

import (
	"sync"
	"sync/atomic"

	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultSubscriberBuffer = 64

// Subscription receives the traffic logs of one tenant. C is closed when the
// subscription is cancelled.
type Subscription struct {
	C       <-chan traffic.Log
	ch      chan traffic.Log
	userID  uuid.UUID
	id      uint64
	dropped atomic.Uint64
}

func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Hub fans stored traffic logs out to the live-feed subscribers of their tenant.
type Hub struct {
	logger *logrus.Logger
	buffer int
	mu     sync.RWMutex
	nextID uint64
	subs   map[uuid.UUID]map[uint64]*Subscription
}

func NewHub(logger *logrus.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Hub{
		logger: logger,
		buffer: buffer,
		subs:   make(map[uuid.UUID]map[uint64]*Subscription),
	}
}

func (h *Hub) Subscribe(userID uuid.UUID) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	ch := make(chan traffic.Log, h.buffer)
	sub := &Subscription{C: ch, ch: ch, userID: userID, id: h.nextID}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[uint64]*Subscription)
	}
	h.subs[userID][sub.id] = sub
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	tenant, ok := h.subs[sub.userID]
	if !ok {
		return
	}
	if _, ok := tenant[sub.id]; !ok {
		return
	}
	delete(tenant, sub.id)
	if len(tenant) == 0 {
		delete(h.subs, sub.userID)
	}
	close(sub.ch)
}

// Broadcast never blocks: a subscriber whose buffer is full misses the log.
func (h *Hub) Broadcast(log traffic.Log) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs[log.UserID] {
		select {
		case sub.ch <- log:
		default:
			sub.dropped.Add(1)
			h.logger.WithFields(logrus.Fields{
				"user_id": log.UserID,
				"log_id":  log.ID,
			}).Debug("live feed subscriber is slow, dropping traffic log")
		}
	}
}

func (h *Hub) Subscribers(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
