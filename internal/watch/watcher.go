// Package watch polls the ledger for chain growth made by other clients.
package watch

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gologme/log"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
)

// ChainSource is the ledger call the watcher polls
type ChainSource interface {
	Chain(ctx context.Context) rpc.Outcome[models.ChainSnapshot]
}

// ChangeHandler is called from the polling goroutine with the new chain length
type ChangeHandler func(length int)

// Logger is the diagnostic logger
type Logger interface {
	Infof(string, ...interface{})
	Debugf(string, ...interface{})
}

// Watcher polls the chain length and reports changes
type Watcher struct {
	source   ChainSource
	interval time.Duration
	log      Logger

	mu              sync.Mutex
	running         bool
	lastKnownLength int // -1 until the first successful poll
	handlers        []ChangeHandler
	cancel          context.CancelFunc
	done            chan struct{}
}

// NewWatcher creates a watcher polling source every interval
func NewWatcher(source ChainSource, interval time.Duration, logger Logger) *Watcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Watcher{
		source:          source,
		interval:        interval,
		log:             logger,
		lastKnownLength: -1,
	}
}

// OnChange registers a handler for chain length changes
func (w *Watcher) OnChange(handler ChangeHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins polling in the background until ctx ends or Stop is called
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	w.log.Infof("[watch] Polling ledger chain every %v", w.interval)
	go w.pollChain(ctx, w.done)
}

// Stop stops polling and waits for the polling goroutine to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.cancel()
	done := w.done
	w.running = false
	w.mu.Unlock()

	<-done
}

// pollChain polls the chain length periodically
func (w *Watcher) pollChain(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.checkForNewBlocks(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Infof("[watch] Chain polling stopped")
			return
		case <-ticker.C:
			w.checkForNewBlocks(ctx)
		}
	}
}

// checkForNewBlocks compares the reported length with the last one seen.
// The first successful poll only records the length.
func (w *Watcher) checkForNewBlocks(ctx context.Context) {
	out := w.source.Chain(ctx)
	if out.Status != rpc.StatusSuccess {
		w.log.Debugf("[watch] Chain poll failed (%s)", out.Status)
		return
	}
	length := out.Value.Length

	w.mu.Lock()
	last := w.lastKnownLength
	w.lastKnownLength = length
	handlers := append([]ChangeHandler(nil), w.handlers...)
	w.mu.Unlock()

	if last < 0 || last == length {
		return
	}

	w.log.Infof("[watch] Chain length changed from %d to %d", last, length)
	for _, h := range handlers {
		h(length)
	}
}
