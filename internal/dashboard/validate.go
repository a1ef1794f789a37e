package dashboard

import (
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

// Chain status labels
const (
	StatusChecking = "Checking..."
	StatusValid    = "Valid ✓"
	StatusInvalid  = "Invalid ✗"
	StatusError    = "Error"
)

// ValidateChain asks the ledger for its integrity verdict and shows it
func (d *Dashboard) ValidateChain() {
	d.post(d._validateChain)
}

func (d *Dashboard) _validateChain() {
	d.page.ChainStatus.Set(StatusChecking, view.ToneNeutral)
	dispatch(d, d.ledger.Validate, d._renderVerdict)
}

// _renderVerdict trusts the server's boolean; nothing is recomputed here
func (d *Dashboard) _renderVerdict(out rpc.Outcome[bool]) {
	switch out.Status {
	case rpc.StatusSuccess:
		if out.Value {
			d.page.ChainStatus.Set(StatusValid, view.ToneSuccess)
			d.sink.Log("Blockchain validation: VALID")
		} else {
			d.page.ChainStatus.Set(StatusInvalid, view.ToneError)
			d.sink.Log("Blockchain validation: INVALID")
		}
	case rpc.StatusReported:
		d.page.ChainStatus.Set(StatusError, view.ToneNeutral)
		d.sink.Log("Error validating blockchain")
	case rpc.StatusNetwork:
		d.page.ChainStatus.Set(StatusError, view.ToneNeutral)
		d.sink.Log("Error: " + out.Err.Error())
	}
}
