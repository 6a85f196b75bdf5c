package observe

import (
	"context"
	"log/slog"
	"sync"

	"fullprice/internal/currency"
	"fullprice/internal/page"
	"fullprice/internal/process"
)

// DocumentLoader re-reads the page from its source after a whole-document
// mutation. Session state survives the reload; document state does not.
type DocumentLoader func() (*page.Document, error)

// Coordinator dispatches mutations to the pipeline. All handling happens on
// a single event loop, one mutation at a time, mirroring the cooperative
// scheduling of the host platform: a callback always runs to completion
// before the next is dispatched.
type Coordinator struct {
	log     *slog.Logger
	pipe    *process.Pipeline
	session *process.Session
	doc     *page.Document

	watchers []Watcher
	listing  Watcher // bracketed with disconnect/reconnect around each pass
	header   Watcher // permanently disconnected once currency resolves

	reload   DocumentLoader
	onSettle func(*page.Document)
}

func NewCoordinator(doc *page.Document, pipe *process.Pipeline, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		log:     log,
		pipe:    pipe,
		session: process.NewSession(),
		doc:     doc,
	}
}

// Session exposes the page-load state for hosts and tests.
func (c *Coordinator) Session() *process.Session { return c.session }

// Document returns the current in-memory page.
func (c *Coordinator) Document() *page.Document { return c.doc }

// SetHeaderWatcher registers the watcher covering the currency region.
func (c *Coordinator) SetHeaderWatcher(w Watcher) {
	c.header = w
	c.watchers = append(c.watchers, w)
}

// SetListingWatcher registers the watcher covering the listing container.
func (c *Coordinator) SetListingWatcher(w Watcher) {
	c.listing = w
	c.watchers = append(c.watchers, w)
}

// AddWatcher registers any further watcher (product quantity/price, file
// sources).
func (c *Coordinator) AddWatcher(w Watcher) {
	c.watchers = append(c.watchers, w)
}

// WithReload installs the loader used on whole-document mutations.
func (c *Coordinator) WithReload(fn DocumentLoader) *Coordinator {
	c.reload = fn
	return c
}

// WithOnSettle installs a hook invoked after each mutation is fully
// handled, with the (possibly replaced) document. Used to persist the
// augmented page and by tests to synchronize.
func (c *Coordinator) WithOnSettle(fn func(*page.Document)) *Coordinator {
	c.onSettle = fn
	return c
}

// Bootstrap connects the registered watchers and, on product pages, runs
// the first pass immediately. Listing pages wait for their first mutation;
// the currency watcher waits for the currency element to appear.
func (c *Coordinator) Bootstrap() error {
	for _, w := range c.watchers {
		if err := w.Connect(); err != nil {
			return err
		}
	}
	if c.doc.IsProductPage() {
		c.pipe.Execute(c.doc, c.session, false)
		c.settle()
	}
	return nil
}

// Run consumes mutations from every registered watcher until the context
// ends. Events from distinct watchers are unordered relative to each other;
// within one watcher they arrive in occurrence order.
func (c *Coordinator) Run(ctx context.Context) error {
	merged := make(chan Mutation)
	var wg sync.WaitGroup

	for _, w := range c.watchers {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case m, ok := <-w.Events():
					if !ok {
						return
					}
					select {
					case merged <- m:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			for _, w := range c.watchers {
				w.Disconnect()
			}
			return ctx.Err()
		case m := <-merged:
			c.Handle(m)
		}
	}
}

// Handle processes one mutation to completion. Exported so single-threaded
// hosts (and tests) can drive the coordinator without Run.
func (c *Coordinator) Handle(m Mutation) {
	c.log.Debug("mutation", "region", m.Region.String(), "session", c.session.ID)

	switch m.Region {
	case RegionHeader:
		c.handleHeader()
	case RegionListing:
		c.handleListing()
	case RegionQuantity, RegionPrice:
		// The product processor force-refreshes internally.
		c.pipe.Execute(c.doc, c.session, false)
	case RegionDocument:
		c.handleReload()
	}
	c.settle()
}

// handleHeader runs the currency observer state machine: the first time the
// currency element is readable, the whole pipeline re-runs with refresh so
// already-augmented items pick up the tax factor, then the watcher is
// permanently disconnected. Currency is assumed stable once resolvable.
func (c *Coordinator) handleHeader() {
	if c.session.CurrencyResolved {
		return
	}
	if currency.Resolve(c.doc) == "" {
		return // keep watching
	}
	c.session.CurrencyResolved = true
	c.pipe.Execute(c.doc, c.session, true)
	if c.header != nil {
		c.header.Disconnect()
	}
}

// handleListing brackets the pass with disconnect/reconnect so the
// pipeline's own DOM writes cannot re-trigger the watcher. This bracket is
// the only concurrency-control primitive in the system.
func (c *Coordinator) handleListing() {
	if c.listing != nil {
		c.listing.Disconnect()
		defer c.listing.Connect()
	}
	c.pipe.Execute(c.doc, c.session, false)
}

// handleReload swaps in a freshly loaded document, keeping session state
// (sort latch, currency terminal state), then runs the appropriate flow.
func (c *Coordinator) handleReload() {
	if c.reload == nil {
		return
	}
	doc, err := c.reload()
	if err != nil {
		c.log.Warn("document reload failed", "error", err)
		return
	}
	c.doc = doc

	if !c.session.CurrencyResolved && currency.Resolve(c.doc) != "" {
		c.session.CurrencyResolved = true
		c.pipe.Execute(c.doc, c.session, true)
		if c.header != nil {
			c.header.Disconnect()
		}
		return
	}
	if c.doc.IsProductPage() {
		c.pipe.Execute(c.doc, c.session, false)
		return
	}
	c.handleListing()
}

func (c *Coordinator) settle() {
	if c.onSettle != nil {
		c.onSettle(c.doc)
	}
}
