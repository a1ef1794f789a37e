package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/chain-dns-dashboard/internal/ledger"
	"github.com/thanhnp/chain-dns-dashboard/internal/models"
)

// Ledger is the chain the ledger API serves
type Ledger interface {
	Register(req models.RegisterRequest) (models.DomainRecord, error)
	Lookup(name string) (models.DomainRecord, error)
	Domains() ([]models.DomainRecord, error)
	Chain() ([]models.Block, error)
	Validate() (bool, error)
}

// LedgerHandler handles ledger API requests. Every response is a models.Envelope.
type LedgerHandler struct {
	ledger Ledger
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(l Ledger) *LedgerHandler {
	return &LedgerHandler{ledger: l}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.Envelope{Success: false, Message: message})
}

func serverError(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, "Server error: "+err.Error())
}

// Register records a new domain
// POST /api/register
func (h *LedgerHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.ledger.Register(req)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrDomainExists):
		fail(c, http.StatusConflict, "Domain already registered")
		return
	case errors.Is(err, ledger.ErrInvalidRecord):
		fail(c, http.StatusBadRequest, err.Error())
		return
	default:
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Envelope{
		Success: true,
		Message: fmt.Sprintf("Domain %s registered successfully", rec.DomainName),
		Domain:  &rec,
	})
}

// Lookup resolves a domain
// GET /api/lookup/:domain
func (h *LedgerHandler) Lookup(c *gin.Context) {
	rec, err := h.ledger.Lookup(c.Param("domain"))
	if errors.Is(err, ledger.ErrDomainNotFound) {
		fail(c, http.StatusNotFound, "Domain not found")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Envelope{Success: true, Domain: &rec})
}

// Domains lists every registered domain
// GET /api/domains
func (h *LedgerHandler) Domains(c *gin.Context) {
	domains, err := h.ledger.Domains()
	if err != nil {
		serverError(c, err)
		return
	}

	// an empty list must still be sent
	c.JSON(http.StatusOK, gin.H{"success": true, "domains": domains})
}

// Chain returns the whole chain, genesis first
// GET /api/chain
func (h *LedgerHandler) Chain(c *gin.Context) {
	chain, err := h.ledger.Chain()
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"length":  len(chain),
		"chain":   chain,
	})
}

// Validate reports whether the chain is intact
// GET /api/validate
func (h *LedgerHandler) Validate(c *gin.Context) {
	valid, err := h.ledger.Validate()
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "valid": valid})
}
