// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub implements the broadcast hub that fans domain events out to live
WebSocket observers.

# Lifecycle

The hub is an explicitly constructed instance with scoped lifetime:

	h := hub.New(registry)   // at process start
	defer h.Shutdown()       // on exit

It is injected into the Mutation Service as its event Publisher. There is no
package-level singleton.

# Observers

Each accepted WebSocket connection becomes an Observer:

	obs := h.Subscribe(conn)
	defer h.Unsubscribe(obs)

Subscribe does not push initial state - clients bootstrap with a point-in-time
read of the REST API and then apply events. Unsubscribe is idempotent.

# Delivery

Publish serializes the event once and offers it to every observer's bounded
outbound queue. Delivery is best-effort and in publish order per observer. A
slow observer whose queue overflows is disconnected so it can never stall the
publisher or other observers; delivery to a disconnected observer is a no-op,
never an error.

# Metrics

With a non-nil prometheus.Registerer, the hub exports:

	pollcast_events_published_total
	pollcast_observers_dropped_total
	pollcast_observers_connected
*/
package hub
