// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/change.go
// Summary: Change-notification protocol between spaces and cache
// spaces: the reason bitmask and the synchronous dispatcher.

package grid

import (
	"strings"
	"sync"
)

// ChangeReason classifies a cache-relevant event as a bitmask. When an
// event carries several bits the cache space honors the highest-
// precedence one: structure clears the cache, hint and item structure
// rebuild the factory, item content is forwarded as-is.
type ChangeReason uint32

const (
	// ChangeReasonSpaceStructure: layout or item identity changed; every
	// cached item is stale.
	ChangeReasonSpaceStructure ChangeReason = 1 << iota
	// ChangeReasonSpaceHint: schema-affecting metadata changed.
	ChangeReasonSpaceHint
	// ChangeReasonSpaceItemsStructure: per-item schema changed.
	ChangeReasonSpaceItemsStructure
	// ChangeReasonSpaceItemsContent: item values changed, layout intact.
	ChangeReasonSpaceItemsContent
	// ChangeReasonCacheContent marks events the cache space emits about
	// itself. It is never interpreted on the inbound side, which keeps
	// the signal fan-out from re-entering the handler.
	ChangeReasonCacheContent
)

// Has reports whether any of the given bits are set.
func (r ChangeReason) Has(bits ChangeReason) bool { return r&bits != 0 }

var reasonNames = []struct {
	bit  ChangeReason
	name string
}{
	{ChangeReasonSpaceStructure, "SpaceStructure"},
	{ChangeReasonSpaceHint, "SpaceHint"},
	{ChangeReasonSpaceItemsStructure, "SpaceItemsStructure"},
	{ChangeReasonSpaceItemsContent, "SpaceItemsContent"},
	{ChangeReasonCacheContent, "CacheContent"},
}

func (r ChangeReason) String() string {
	if r == 0 {
		return "None"
	}
	var parts []string
	for _, rn := range reasonNames {
		if r&rn.bit != 0 {
			parts = append(parts, rn.name)
		}
	}
	return strings.Join(parts, "|")
}

// SpaceListener receives change events from a Space.
type SpaceListener interface {
	OnSpaceChanged(space Space, reason ChangeReason)
}

// SpaceDispatcher manages space listeners and broadcasts change events
// to them synchronously. Concrete spaces embed it.
type SpaceDispatcher struct {
	mu        sync.RWMutex
	listeners []SpaceListener
}

// Subscribe adds a listener.
func (d *SpaceDispatcher) Subscribe(l SpaceListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// Unsubscribe removes a previously subscribed listener.
func (d *SpaceDispatcher) Unsubscribe(l SpaceListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, cur := range d.listeners {
		if cur == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast delivers an event to all listeners, on the caller's
// goroutine and in subscription order.
func (d *SpaceDispatcher) Broadcast(space Space, reason ChangeReason) {
	d.mu.RLock()
	listeners := make([]SpaceListener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()
	for _, l := range listeners {
		l.OnSpaceChanged(space, reason)
	}
}
