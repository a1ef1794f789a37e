// Package dashboard is the synchronization and rendering controller of the
// ledger DNS dashboard. It keeps the page's domain table, chain view, status
// indicators and logs consistent with the ledger across asynchronous calls.
//
// The Dashboard is an actor: every page write happens on its inbox, one
// message at a time. Ledger calls run on their own goroutines and post their
// continuation back to the inbox. Actions triggered independently are not
// ordered against each other; whichever response is rendered last stays on
// the page.
package dashboard

import (
	"context"
	"io"

	"github.com/Arceliar/phony"
	"github.com/gologme/log"

	"github.com/thanhnp/chain-dns-dashboard/internal/config"
	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/notifier"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
	"github.com/thanhnp/chain-dns-dashboard/pkg/semver"
)

// Ledger is the ledger API the dashboard drives
type Ledger interface {
	Register(ctx context.Context, req models.RegisterRequest) rpc.Outcome[string]
	Lookup(ctx context.Context, name string) rpc.Outcome[models.DomainRecord]
	Domains(ctx context.Context) rpc.Outcome[[]models.DomainRecord]
	Chain(ctx context.Context) rpc.Outcome[models.ChainSnapshot]
	Validate(ctx context.Context) rpc.Outcome[bool]
	Health(ctx context.Context) rpc.Outcome[models.Health]
}

// Logger is the diagnostic logger
type Logger interface {
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
}

// Options are the deploy-time constants of a dashboard
type Options struct {
	// DomainSuffix is appended to the base name typed in the register form
	DomainSuffix string
	// SupportedAPIs lists ledger API versions this dashboard understands, by major version
	SupportedAPIs []semver.Version
}

// DefaultSupportedAPIs is the ledger API range this build was written against
var DefaultSupportedAPIs = []semver.Version{semver.New(1, 0, 0)}

// Dashboard owns the page and the controllers that write it
type Dashboard struct {
	phony.Inbox
	ctx       context.Context
	page      *view.Page
	ledger    Ledger
	sink      *notifier.Sink
	log       Logger
	suffix    string
	supported []semver.Version
	pending   tracker
}

// New creates a dashboard writing into page. The sink must write the same page.
// ctx bounds every ledger call for the lifetime of the dashboard.
func New(ctx context.Context, page *view.Page, ledger Ledger, sink *notifier.Sink, logger Logger, opts Options) *Dashboard {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.SupportedAPIs == nil {
		opts.SupportedAPIs = DefaultSupportedAPIs
	}
	return &Dashboard{
		ctx:       ctx,
		page:      page,
		ledger:    ledger,
		sink:      sink,
		log:       logger,
		suffix:    opts.DomainSuffix,
		supported: opts.SupportedAPIs,
	}
}

// OptionsFromConfig maps the dashboard section of the configuration
func OptionsFromConfig(cfg config.DashboardConfig) Options {
	return Options{DomainSuffix: cfg.DomainSuffix}
}

// Sink returns the feedback sink, for subscribing to terminal lines
func (d *Dashboard) Sink() *notifier.Sink {
	return d.sink
}

// Init performs the initial page load: both syncs, the connection probe and
// the readiness announcement.
func (d *Dashboard) Init() {
	d.post(func() {
		d.sink.Log("Ledger DNS dashboard initialized")
		d._loadDomains()
		d._loadBlockchain()
		d._probeConnection()
		d.sink.Expand()
		d.sink.Log("Ledger DNS system ready for use")
	})
}

// ToggleTerminal flips the terminal panel between expanded and collapsed
func (d *Dashboard) ToggleTerminal() {
	d.post(func() {
		expanded := d.sink.Toggle()
		d.log.Debugf("[dashboard] terminal expanded=%v", expanded)
	})
}

// Snapshot returns a copy of the page as it is right now
func (d *Dashboard) Snapshot() view.Page {
	var snap view.Page
	phony.Block(d, func() {
		snap = d.page.Snapshot()
	})
	return snap
}

// Settle blocks until every action and ledger call issued so far, and any
// they triggered, has been rendered, or ctx ends.
func (d *Dashboard) Settle(ctx context.Context) error {
	return d.pending.wait(ctx)
}

// post runs action on the inbox
func (d *Dashboard) post(action func()) {
	d.pending.add()
	d.Act(nil, func() {
		defer d.pending.done()
		action()
	})
}

// dispatch runs call off the inbox and hands its outcome to then, on the inbox.
// Must be called from the inbox.
func dispatch[T any](d *Dashboard, call func(context.Context) rpc.Outcome[T], then func(rpc.Outcome[T])) {
	d.pending.add()
	go func() {
		out := call(d.ctx)
		d.Act(nil, func() {
			defer d.pending.done()
			then(out)
		})
	}()
}

// showResult replaces a result slot in one write
func (d *Dashboard) showResult(slot *view.ResultSlot, message string, kind view.Kind, fields ...view.Field) {
	slot.Show(view.Result{Message: message, Fields: fields, Kind: kind})
}
