package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/notifier"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

// fakeLedger answers from per-operation funcs and counts calls.
// A nil func answers an empty success.
type fakeLedger struct {
	mu    sync.Mutex
	calls map[string]int
	reqs  []models.RegisterRequest

	register func(models.RegisterRequest) rpc.Outcome[string]
	lookup   func(string) rpc.Outcome[models.DomainRecord]
	domains  func(call int) rpc.Outcome[[]models.DomainRecord]
	chain    func() rpc.Outcome[models.ChainSnapshot]
	validate func() rpc.Outcome[bool]
	health   func() rpc.Outcome[models.Health]
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{calls: make(map[string]int)}
}

func (f *fakeLedger) hit(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.calls[op]
}

func (f *fakeLedger) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeLedger) Register(_ context.Context, req models.RegisterRequest) rpc.Outcome[string] {
	f.hit(rpc.OpRegister)
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.register == nil {
		return rpc.Success("Domain registered successfully")
	}
	return f.register(req)
}

func (f *fakeLedger) Lookup(_ context.Context, name string) rpc.Outcome[models.DomainRecord] {
	f.hit(rpc.OpLookup)
	if f.lookup == nil {
		return rpc.Reported[models.DomainRecord]("Domain not found")
	}
	return f.lookup(name)
}

func (f *fakeLedger) Domains(_ context.Context) rpc.Outcome[[]models.DomainRecord] {
	n := f.hit(rpc.OpDomains)
	if f.domains == nil {
		return rpc.Success([]models.DomainRecord{})
	}
	return f.domains(n)
}

func (f *fakeLedger) Chain(_ context.Context) rpc.Outcome[models.ChainSnapshot] {
	f.hit(rpc.OpChain)
	if f.chain == nil {
		return rpc.Success(models.ChainSnapshot{Length: 1, Blocks: []models.Block{genesis()}})
	}
	return f.chain()
}

func (f *fakeLedger) Validate(_ context.Context) rpc.Outcome[bool] {
	f.hit(rpc.OpValidate)
	if f.validate == nil {
		return rpc.Success(true)
	}
	return f.validate()
}

func (f *fakeLedger) Health(_ context.Context) rpc.Outcome[models.Health] {
	f.hit(rpc.OpHealth)
	if f.health == nil {
		return rpc.Success(models.Health{Status: "ok"})
	}
	return f.health()
}

func genesis() models.Block {
	return models.Block{
		Index:        0,
		Timestamp:    "2024-01-01T00:00:00Z",
		Hash:         "00aa11bb22cc33dd44ee55ff66778899aabbccddeeff",
		PreviousHash: "0",
		Domains:      []models.DomainRecord{},
	}
}

// newTestDashboard wires a dashboard to a fresh page and the given ledger
func newTestDashboard(t *testing.T, ledger Ledger) (*Dashboard, *view.Page) {
	t.Helper()
	page := view.NewPage()
	sink := notifier.NewSink(page, nil)
	d := New(context.Background(), page, ledger, sink, nil, Options{DomainSuffix: ".block"})
	return d, page
}

// settle waits for the dashboard and returns its page
func settle(t *testing.T, d *Dashboard) view.Page {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Settle(ctx))
	return d.Snapshot()
}

func terminalTexts(p view.Page) []string {
	out := make([]string, 0, len(p.Terminal.Lines))
	for _, l := range p.Terminal.Lines {
		out = append(out, l.Text)
	}
	return out
}

func activityTexts(p view.Page) []string {
	out := make([]string, 0, len(p.Activity.Lines))
	for _, l := range p.Activity.Lines {
		out = append(out, l.Text)
	}
	return out
}
