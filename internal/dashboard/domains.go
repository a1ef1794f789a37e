package dashboard

import (
	"fmt"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

// LoadDomains refreshes the domain table from the ledger
func (d *Dashboard) LoadDomains() {
	d.post(d._loadDomains)
}

func (d *Dashboard) _loadDomains() {
	d.page.Domains.Replace(view.Row{Note: "Loading domains...", Class: "pulse"})
	dispatch(d, d.ledger.Domains, d._renderDomains)
}

func (d *Dashboard) _renderDomains(out rpc.Outcome[[]models.DomainRecord]) {
	switch out.Status {
	case rpc.StatusSuccess:
		if len(out.Value) == 0 {
			d.page.Domains.Replace(view.Row{Note: "No domains registered yet", Class: "empty"})
			d.sink.Log("Loaded 0 domains")
			return
		}
		rows := make([]view.Row, 0, len(out.Value))
		for _, rec := range out.Value {
			rows = append(rows, view.Row{Cells: []string{rec.DomainName, rec.IPAddress, rec.Owner, rec.RegisteredAt}})
		}
		d.page.Domains.Replace(rows...)
		d.sink.Log(fmt.Sprintf("Loaded %d domains", len(rows)))
	case rpc.StatusReported:
		d.page.Domains.Replace(view.Row{Note: "Error loading domains", Class: "error"})
		d.sink.Log("Error loading domains")
	case rpc.StatusNetwork:
		d.page.Domains.Replace(view.Row{Note: "Error connecting to server", Class: "error"})
		d.sink.Log("Error: " + out.Err.Error())
	}
}
