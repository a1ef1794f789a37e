package dashboard

import (
	"fmt"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
	"github.com/thanhnp/chain-dns-dashboard/pkg/semver"
)

// ProbeConnection checks that the ledger answers and shows the result
func (d *Dashboard) ProbeConnection() {
	d.post(d._probeConnection)
}

func (d *Dashboard) _probeConnection() {
	d.page.Connection.Set("Checking server connection...", view.ToneNeutral)
	dispatch(d, d.ledger.Health, d._renderConnection)
}

func (d *Dashboard) _renderConnection(out rpc.Outcome[models.Health]) {
	switch out.Status {
	case rpc.StatusSuccess:
		d.page.Connection.Set(d.describeLedger(out.Value.Version), view.ToneSuccess)
	case rpc.StatusReported:
		d.page.Connection.Set("Server error: "+out.Message, view.ToneError)
		d.log.Warnf("[dashboard] ledger health check reported %s", out.Message)
	case rpc.StatusNetwork:
		d.page.Connection.Set("Cannot connect to server", view.ToneError)
		d.log.Warnf("[dashboard] ledger unreachable: %v", out.Err)
	}
}

// describeLedger formats the connected label, flagging versions outside the supported range
func (d *Dashboard) describeLedger(version string) string {
	if version == "" {
		return "Connected to server"
	}
	v, err := semver.Parse(version)
	if err != nil {
		d.log.Warnf("[dashboard] ledger reported unparsable version %q: %v", version, err)
		return fmt.Sprintf("Connected to server (unknown API version %s)", version)
	}
	if !semver.AnyCompatible(d.supported, v) {
		d.log.Warnf("[dashboard] ledger API %s is not supported", v)
		return fmt.Sprintf("Connected to server (unsupported API %s)", v)
	}
	d.log.Infof("[dashboard] connected to ledger API %s", v)
	return fmt.Sprintf("Connected to server (API %s)", v)
}
