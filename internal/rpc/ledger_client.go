package rpc

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
)

// Operation names, used as metric labels and error prefixes
const (
	OpRegister = "register"
	OpLookup   = "lookup"
	OpDomains  = "domains"
	OpChain    = "chain"
	OpValidate = "validate"
	OpHealth   = "health"
)

// Client talks to the ledger service over its HTTP/JSON contract.
// Every method blocks until the call ends; callers that must not block
// run it on their own goroutine.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the ledger rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// call performs one request and decodes the envelope whatever the HTTP status.
// A nil envelope means the request failed or the body was not an envelope.
func (c *Client) call(ctx context.Context, op string, send func(*resty.Request) (*resty.Response, error)) (*models.Envelope, error) {
	resp, err := send(c.http.R().SetContext(ctx))
	if err != nil {
		return nil, errors.WithMessagef(err, "%s request failed", op)
	}

	var env models.Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, errors.WithMessagef(err, "%s: unparsable response (HTTP %d)", op, resp.StatusCode())
	}
	return &env, nil
}

// Register asks the ledger to record a new domain
// POST /api/register
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) Outcome[string] {
	start := time.Now()
	env, err := c.call(ctx, OpRegister, func(r *resty.Request) (*resty.Response, error) {
		return r.SetHeader("Content-Type", "application/json").SetBody(req).Post("/api/register")
	})

	out := Network[string](err)
	switch {
	case err != nil:
	case !env.Success:
		out = Reported[string](env.Message)
	default:
		out = Success(env.Message)
	}
	observe(OpRegister, out.Status, start)
	return out
}

// Lookup fetches one domain record
// GET /api/lookup/{domain_name}
func (c *Client) Lookup(ctx context.Context, name string) Outcome[models.DomainRecord] {
	start := time.Now()
	env, err := c.call(ctx, OpLookup, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("domain", name).Get("/api/lookup/{domain}")
	})

	out := Network[models.DomainRecord](err)
	switch {
	case err != nil:
	case !env.Success:
		out = Reported[models.DomainRecord](env.Message)
	case env.Domain == nil:
		out = Network[models.DomainRecord](errors.New("lookup: response has no domain"))
	default:
		out = Success(*env.Domain)
	}
	observe(OpLookup, out.Status, start)
	return out
}

// Domains fetches the full registered-domain set in server order
// GET /api/domains
func (c *Client) Domains(ctx context.Context) Outcome[[]models.DomainRecord] {
	start := time.Now()
	env, err := c.call(ctx, OpDomains, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/domains")
	})

	out := Network[[]models.DomainRecord](err)
	switch {
	case err != nil:
	case !env.Success:
		out = Reported[[]models.DomainRecord](env.Message)
	case env.Domains == nil:
		out = Network[[]models.DomainRecord](errors.New("domains: response has no domain list"))
	default:
		out = Success(env.Domains)
	}
	observe(OpDomains, out.Status, start)
	return out
}

// Chain fetches the block chain in server order together with its reported length
// GET /api/chain
func (c *Client) Chain(ctx context.Context) Outcome[models.ChainSnapshot] {
	start := time.Now()
	env, err := c.call(ctx, OpChain, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/chain")
	})

	out := Network[models.ChainSnapshot](err)
	switch {
	case err != nil:
	case !env.Success:
		out = Reported[models.ChainSnapshot](env.Message)
	case env.Length == nil:
		out = Network[models.ChainSnapshot](errors.New("chain: response has no length"))
	case env.Chain == nil:
		out = Network[models.ChainSnapshot](errors.New("chain: response has no blocks"))
	default:
		out = Success(models.ChainSnapshot{Length: *env.Length, Blocks: env.Chain})
	}
	observe(OpChain, out.Status, start)
	return out
}

// Validate asks the ledger for its chain-integrity verdict
// GET /api/validate
func (c *Client) Validate(ctx context.Context) Outcome[bool] {
	start := time.Now()
	env, err := c.call(ctx, OpValidate, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/validate")
	})

	out := Network[bool](err)
	switch {
	case err != nil:
	case !env.Success:
		out = Reported[bool](env.Message)
	case env.Valid == nil:
		out = Network[bool](errors.New("validate: response has no verdict"))
	default:
		out = Success(*env.Valid)
	}
	observe(OpValidate, out.Status, start)
	return out
}

// Health probes the ledger's liveness endpoint
// GET /health
func (c *Client) Health(ctx context.Context) Outcome[models.Health] {
	start := time.Now()
	var out Outcome[models.Health]
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	switch {
	case err != nil:
		out = Network[models.Health](errors.WithMessagef(err, "%s request failed", OpHealth))
	case resp.IsError():
		out = Reported[models.Health](resp.Status())
	default:
		var health models.Health
		if err := json.Unmarshal(resp.Body(), &health); err != nil {
			out = Network[models.Health](errors.WithMessagef(err, "%s: unparsable response", OpHealth))
		} else {
			out = Success(health)
		}
	}
	observe(OpHealth, out.Status, start)
	return out
}
