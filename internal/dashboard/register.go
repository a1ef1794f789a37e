package dashboard

import (
	"context"
	"fmt"
	"regexp"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

// ipPattern only checks the dotted-quad shape; octets above 255 pass.
var ipPattern = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)

const (
	msgInvalidIP        = "Invalid IP address format. Please use format: 192.168.1.1"
	msgConnectionFailed = "Error connecting to server"
)

// ValidIPFormat reports whether s looks like a dotted-quad address
func ValidIPFormat(s string) bool {
	return ipPattern.MatchString(s)
}

// SubmitRegister fills the register form with values and submits it.
// A nil map submits whatever the form currently holds.
func (d *Dashboard) SubmitRegister(values map[string]string) {
	d.post(func() {
		d.page.RegisterForm.Fill(values)
		d._submitRegister()
	})
}

func (d *Dashboard) _submitRegister() {
	form := &d.page.RegisterForm
	req := models.RegisterRequest{
		DomainName: form.Get(view.FieldDomainName) + d.suffix,
		IPAddress:  form.Get(view.FieldIPAddress),
		Owner:      form.Get(view.FieldOwner),
	}

	if !ValidIPFormat(req.IPAddress) {
		d.showResult(&d.page.RegisterResult, msgInvalidIP, view.KindError)
		d.sink.Log(fmt.Sprintf("Domain registration rejected: %s - invalid IP address %q", req.DomainName, req.IPAddress))
		return
	}

	register := func(ctx context.Context) rpc.Outcome[string] {
		return d.ledger.Register(ctx, req)
	}
	dispatch(d, register, func(out rpc.Outcome[string]) {
		d._registerDone(req, out)
	})
}

func (d *Dashboard) _registerDone(req models.RegisterRequest, out rpc.Outcome[string]) {
	switch out.Status {
	case rpc.StatusSuccess:
		d.showResult(&d.page.RegisterResult, out.Value, view.KindSuccess)
		d.page.RegisterForm.Reset()
		d._loadDomains()
		d._loadBlockchain()
		msg := fmt.Sprintf("Domain registered: %s → %s (Owner: %s)", req.DomainName, req.IPAddress, req.Owner)
		d.sink.Log(msg)
		d.sink.LogActivity(msg)
	case rpc.StatusReported:
		d.showResult(&d.page.RegisterResult, out.Message, view.KindError)
		d.sink.Log(fmt.Sprintf("Domain registration failed: %s - %s", req.DomainName, out.Message))
	case rpc.StatusNetwork:
		d.showResult(&d.page.RegisterResult, msgConnectionFailed, view.KindError)
		d.sink.Log("Error: " + out.Err.Error())
	}
}
