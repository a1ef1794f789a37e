package dashboard

import (
	"context"
	"fmt"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

// SubmitLookup types name into the lookup form and submits it
func (d *Dashboard) SubmitLookup(name string) {
	d.post(func() {
		d.page.LookupForm.Fill(map[string]string{view.FieldLookupName: name})
		d._submitLookup()
	})
}

func (d *Dashboard) _submitLookup() {
	name := d.page.LookupForm.Get(view.FieldLookupName)
	lookup := func(ctx context.Context) rpc.Outcome[models.DomainRecord] {
		return d.ledger.Lookup(ctx, name)
	}
	dispatch(d, lookup, func(out rpc.Outcome[models.DomainRecord]) {
		d._lookupDone(name, out)
	})
}

func (d *Dashboard) _lookupDone(name string, out rpc.Outcome[models.DomainRecord]) {
	switch out.Status {
	case rpc.StatusSuccess:
		rec := out.Value
		d.showResult(&d.page.LookupResult, "Domain found", view.KindInfo,
			view.Field{Label: "Domain", Value: rec.DomainName},
			view.Field{Label: "IP Address", Value: rec.IPAddress},
			view.Field{Label: "Owner", Value: rec.Owner},
			view.Field{Label: "Registered", Value: rec.RegisteredAt},
		)
		msg := fmt.Sprintf("Domain lookup: %s → %s", name, rec.IPAddress)
		d.sink.Log(msg)
		d.sink.LogActivity(msg)
	case rpc.StatusReported:
		d.showResult(&d.page.LookupResult, out.Message, view.KindError)
		d.sink.Log(fmt.Sprintf("Domain lookup failed: %s - %s", name, out.Message))
	case rpc.StatusNetwork:
		d.showResult(&d.page.LookupResult, msgConnectionFailed, view.KindError)
		d.sink.Log("Error: " + out.Err.Error())
	}
}
