// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"pollcast/event"
)

// sendQueueSize bounds the per-observer outbound queue. An observer that
// falls this far behind is disconnected rather than stalling the publisher.
const sendQueueSize = 32

// Hub maintains the set of live observer connections and fans every domain
// event out to all of them in publish order. Delivery is best-effort: there
// is no per-observer acknowledgment or replay, and clients reconcile through
// the read API after a reconnect.
//
// A Hub is constructed explicitly at process start and shut down on exit;
// it is injected into the Mutation Service, never referenced as a global.
type Hub struct {
	mu        sync.RWMutex
	observers map[*Observer]struct{}
	closed    bool

	metrics hubMetrics
}

type hubMetrics struct {
	published prometheus.Counter
	dropped   prometheus.Counter
	observers prometheus.Gauge
}

// New creates a Hub. reg may be nil to skip metrics registration.
func New(reg prometheus.Registerer) *Hub {
	h := &Hub{
		observers: make(map[*Observer]struct{}),
	}
	h.metrics = hubMetrics{
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pollcast_events_published_total",
			Help: "Number of domain events published to the hub",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pollcast_observers_dropped_total",
			Help: "Number of observers disconnected for falling behind",
		}),
		observers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pollcast_observers_connected",
			Help: "Number of currently connected observers",
		}),
	}
	if reg != nil {
		reg.MustRegister(h.metrics.published, h.metrics.dropped, h.metrics.observers)
	}
	return h
}

// Subscribe registers a new observer for the given connection and starts its
// write loop. No initial state is pushed; observers bootstrap with a
// point-in-time read and then follow the stream.
func (h *Hub) Subscribe(conn *websocket.Conn) *Observer {
	o := &Observer{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		o.close()
		return o
	}
	h.observers[o] = struct{}{}
	n := len(h.observers)
	h.mu.Unlock()

	h.metrics.observers.Set(float64(n))
	slog.Info("observer connected", "observers", n)

	go o.writeLoop()
	return o
}

// Unsubscribe removes an observer from the broadcast set and closes its
// connection. Idempotent; safe to call on disconnect or explicit close.
func (h *Hub) Unsubscribe(o *Observer) {
	h.mu.Lock()
	_, present := h.observers[o]
	delete(h.observers, o)
	n := len(h.observers)
	h.mu.Unlock()

	o.close()

	if present {
		h.metrics.observers.Set(float64(n))
		slog.Info("observer disconnected", "observers", n)
	}
}

// Publish delivers an event to every currently subscribed observer. Sending
// to an observer that has disconnected is a no-op; an observer whose queue is
// full is dropped so the publisher never blocks.
func (h *Hub) Publish(ev event.Event) {
	msg, err := event.Marshal(ev)
	if err != nil {
		slog.Error("failed to marshal event", "type", ev.EventType(), "error", err)
		return
	}

	h.mu.RLock()
	observers := make([]*Observer, 0, len(h.observers))
	for o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	h.metrics.published.Inc()
	for _, o := range observers {
		if !o.enqueue(msg) {
			h.metrics.dropped.Inc()
			slog.Warn("dropping slow observer", "queue", sendQueueSize)
			h.Unsubscribe(o)
		}
	}
}

// Len returns the number of currently subscribed observers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Shutdown disconnects every observer and rejects future subscriptions.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	observers := make([]*Observer, 0, len(h.observers))
	for o := range h.observers {
		observers = append(observers, o)
	}
	h.observers = make(map[*Observer]struct{})
	h.mu.Unlock()

	for _, o := range observers {
		o.close()
	}
	h.metrics.observers.Set(0)
}

// Observer is one live connection's handle in the broadcast set.
type Observer struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// enqueue offers a message to the observer's outbound queue. Returns false
// when the queue is full; enqueueing to a closed observer quietly succeeds.
func (o *Observer) enqueue(msg []byte) bool {
	select {
	case <-o.done:
		return true
	default:
	}
	select {
	case o.send <- msg:
		return true
	case <-o.done:
		return true
	default:
		return false
	}
}

// writeLoop drains the outbound queue onto the wire. A write error tears the
// observer down; the publisher is never involved.
func (o *Observer) writeLoop() {
	for {
		select {
		case <-o.done:
			return
		case msg := <-o.send:
			if err := o.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				o.hub.Unsubscribe(o)
				return
			}
		}
	}
}

// close also closes the connection so a write blocked on a wedged socket
// unblocks with an error.
func (o *Observer) close() {
	o.once.Do(func() {
		close(o.done)
		o.conn.Close()
	})
}
