/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the DeliveryRegistry: the concurrency-safe mapping from a
client id to its outbound delivery sink. The registry is deliberately kept
separate from the RoomStore so room state can be reasoned about without any
transport concept; the two are reconciled only by the use cases.
*/
package chat

import (
	"errors"
	"sync"

	"parlor/internal/pkg/errs"
)

// DeliverySink pushes one textual payload to a single connected client.
// Implementations must not block indefinitely; an error return means the
// sink is dead and the registry will evict it.
type DeliverySink interface {
	Deliver(payload string) error
}

// DeliveryFailure reports one failed delivery attempt during a fan-out.
type DeliveryFailure struct {
	// ClientID is the target whose delivery failed.
	ClientID ClientID

	// Err carries ErrDeliveryUnknown or ErrDeliveryClosed.
	Err *errs.CustomError
}

// DeliveryRegistry maps client ids to delivery sinks and fans payloads out
// to sets of targets.
type DeliveryRegistry interface {
	// Register attaches a sink to id. It fails with ErrDuplicateClient if id
	// already has a sink registered.
	Register(id ClientID, sink DeliverySink) error

	// Unregister detaches and returns the sink for id. Absence is expected
	// under disconnect races and is reported via ok, not an error.
	Unregister(id ClientID) (sink DeliverySink, ok bool)

	// SendTo delivers payload to a single client. It fails with
	// ErrDeliveryUnknown if no sink is registered and ErrDeliveryClosed if
	// the sink rejects the payload; a closed sink is evicted as a side
	// effect and never retried.
	SendTo(id ClientID, payload string) error

	// Broadcast attempts delivery of payload to every target independently.
	// A failure for one target never blocks or aborts delivery to others.
	// The returned slice holds one entry per failed target.
	Broadcast(targets []ClientID, payload string) []DeliveryFailure

	// Size returns the number of registered sinks.
	Size() int
}

// MemoryDeliveryRegistry is the in-process DeliveryRegistry implementation.
// The internal lock is only held while reading or mutating the sink map,
// never across a sink write, so a stalled client cannot stall the room.
type MemoryDeliveryRegistry struct {
	// mu protects the sinks map.
	mu sync.RWMutex

	// sinks maps a client id to its registered delivery sink.
	sinks map[ClientID]DeliverySink
}

// NewMemoryDeliveryRegistry creates an empty MemoryDeliveryRegistry.
func NewMemoryDeliveryRegistry() *MemoryDeliveryRegistry {
	return &MemoryDeliveryRegistry{
		sinks: make(map[ClientID]DeliverySink),
	}
}

// Register implements DeliveryRegistry.
func (g *MemoryDeliveryRegistry) Register(id ClientID, sink DeliverySink) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.sinks[id]; ok {
		return errs.NewError(errs.ErrDuplicateClient, id)
	}

	g.sinks[id] = sink
	return nil
}

// Unregister implements DeliveryRegistry.
func (g *MemoryDeliveryRegistry) Unregister(id ClientID) (DeliverySink, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sink, ok := g.sinks[id]
	if ok {
		delete(g.sinks, id)
	}

	return sink, ok
}

// SendTo implements DeliveryRegistry.
func (g *MemoryDeliveryRegistry) SendTo(id ClientID, payload string) error {
	g.mu.RLock()
	sink, ok := g.sinks[id]
	g.mu.RUnlock()

	if !ok {
		return errs.NewError(errs.ErrDeliveryUnknown, id)
	}

	// The sink write happens outside the lock.
	if err := sink.Deliver(payload); err != nil {
		// A failed send is an implicit disconnect signal: evict the sink.
		g.mu.Lock()
		if current, stillThere := g.sinks[id]; stillThere && current == sink {
			delete(g.sinks, id)
		}
		g.mu.Unlock()

		return errs.NewError(errs.ErrDeliveryClosed, id)
	}

	return nil
}

// Broadcast implements DeliveryRegistry.
func (g *MemoryDeliveryRegistry) Broadcast(targets []ClientID, payload string) []DeliveryFailure {
	var failures []DeliveryFailure

	for _, target := range targets {
		if err := g.SendTo(target, payload); err != nil {
			var custom *errs.CustomError
			if !errors.As(err, &custom) {
				custom = errs.NewError(errs.ErrUnknown)
			}
			failures = append(failures, DeliveryFailure{ClientID: target, Err: custom})
		}
	}

	return failures
}

// Size implements DeliveryRegistry.
func (g *MemoryDeliveryRegistry) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.sinks)
}
