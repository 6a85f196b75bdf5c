// Package observe is the mutation coordination layer: it owns the page
// session state and re-invokes the pipeline when a watched region of the
// page changes. Watchers are capability objects over whatever mutation
// primitive the platform offers; the layer itself only sees Mutation
// events.
package observe

import (
	"sync"
	"time"
)

// Region identifies which watched part of the page a mutation touched.
type Region int

const (
	// RegionHeader covers the navigation area holding the currency label.
	RegionHeader Region = iota
	// RegionListing covers the listing container.
	RegionListing
	// RegionQuantity covers the product page quantity input.
	RegionQuantity
	// RegionPrice covers the product page price element.
	RegionPrice
	// RegionDocument signals a whole-page replacement (file sources).
	RegionDocument
)

func (r Region) String() string {
	switch r {
	case RegionHeader:
		return "header"
	case RegionListing:
		return "listing"
	case RegionQuantity:
		return "quantity"
	case RegionPrice:
		return "price"
	case RegionDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Mutation is one asynchronous change notification.
type Mutation struct {
	Region Region
	At     time.Time
}

// Watcher watches one page region. Disconnect must be cheap: the listing
// flow brackets every processing pass with disconnect/reconnect so the
// pipeline never observes its own writes.
type Watcher interface {
	Connect() error
	Disconnect()
	Events() <-chan Mutation
}

// MemoryWatcher delivers programmatic notifications from an embedding host
// (or a test). Notifications raised while disconnected are dropped, which
// is exactly the re-entrancy guard the listing bracket relies on.
type MemoryWatcher struct {
	region Region
	ch     chan Mutation

	mu        sync.Mutex
	connected bool
}

func NewMemoryWatcher(region Region) *MemoryWatcher {
	return &MemoryWatcher{
		region: region,
		ch:     make(chan Mutation, 16),
	}
}

func (w *MemoryWatcher) Connect() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = true
	return nil
}

func (w *MemoryWatcher) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
}

// Connected reports the current observation state.
func (w *MemoryWatcher) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

func (w *MemoryWatcher) Events() <-chan Mutation { return w.ch }

// Notify raises a mutation for this watcher's region. Dropped when the
// watcher is disconnected or its buffer is full.
func (w *MemoryWatcher) Notify() {
	w.mu.Lock()
	connected := w.connected
	w.mu.Unlock()
	if !connected {
		return
	}
	select {
	case w.ch <- Mutation{Region: w.region, At: time.Now()}:
	default:
	}
}
