package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/chain-dns-dashboard/internal/dashboard"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

// Logger is what the dashboard handler reports through
type Logger interface {
	Warnf(string, ...interface{})
}

// DashboardHandler serves the page and turns form posts into dashboard actions
type DashboardHandler struct {
	dash       *dashboard.Dashboard
	suffix     string
	settle     time.Duration
	bufferSize int
	log        Logger
}

// NewDashboardHandler creates a new DashboardHandler. settle bounds how long
// an action waits for its results before redirecting back to the page.
func NewDashboardHandler(d *dashboard.Dashboard, suffix string, settle time.Duration, bufferSize int, log Logger) *DashboardHandler {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &DashboardHandler{
		dash:       d,
		suffix:     suffix,
		settle:     settle,
		bufferSize: bufferSize,
		log:        log,
	}
}

// Page renders the dashboard
// GET /
func (h *DashboardHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Page":   h.dash.Snapshot(),
		"Suffix": h.suffix,
	})
}

// State returns the view model as JSON
// GET /state
func (h *DashboardHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Snapshot())
}

// Register submits the register form
// POST /register
func (h *DashboardHandler) Register(c *gin.Context) {
	h.dash.SubmitRegister(map[string]string{
		view.FieldDomainName: c.PostForm(view.FieldDomainName),
		view.FieldIPAddress:  c.PostForm(view.FieldIPAddress),
		view.FieldOwner:      c.PostForm(view.FieldOwner),
	})
	h.settleAndRedirect(c)
}

// Lookup submits the lookup form
// POST /lookup
func (h *DashboardHandler) Lookup(c *gin.Context) {
	h.dash.SubmitLookup(c.PostForm(view.FieldLookupName))
	h.settleAndRedirect(c)
}

// RefreshDomains reloads the domain table
// POST /domains/refresh
func (h *DashboardHandler) RefreshDomains(c *gin.Context) {
	h.dash.LoadDomains()
	h.settleAndRedirect(c)
}

// RefreshChain reloads the chain view
// POST /chain/refresh
func (h *DashboardHandler) RefreshChain(c *gin.Context) {
	h.dash.LoadBlockchain()
	h.settleAndRedirect(c)
}

// ValidateChain asks the ledger to validate its chain
// POST /chain/validate
func (h *DashboardHandler) ValidateChain(c *gin.Context) {
	h.dash.ValidateChain()
	h.settleAndRedirect(c)
}

// ToggleTerminal expands or collapses the terminal panel
// POST /terminal/toggle
func (h *DashboardHandler) ToggleTerminal(c *gin.Context) {
	h.dash.ToggleTerminal()
	h.settleAndRedirect(c)
}

// Events streams terminal lines as server-sent events
// GET /events
func (h *DashboardHandler) Events(c *gin.Context) {
	lines := make(chan view.LogLine, h.bufferSize)
	cancel := h.dash.Sink().OnLine(func(line view.LogLine) {
		select {
		case lines <- line:
		default:
			h.log.Warnf("[dashboard] event stream full, dropping line %q", line.Text)
		}
	})
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case line := <-lines:
			c.SSEvent("terminal", line.String())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// settleAndRedirect waits for the action's ledger calls to render, then sends
// the browser back to the page. A slow ledger only delays the redirect.
func (h *DashboardHandler) settleAndRedirect(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.settle)
	defer cancel()
	if err := h.dash.Settle(ctx); err != nil {
		h.log.Warnf("[dashboard] %s %s did not settle: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}
