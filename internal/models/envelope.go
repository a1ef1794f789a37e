package models

// RegisterRequest is the body of POST /api/register
type RegisterRequest struct {
	DomainName string `json:"domain_name"`
	IPAddress  string `json:"ip_address"`
	Owner      string `json:"owner"`
}

// Envelope is the common shape of every ledger API response.
// Only the fields relevant to the called operation are populated.
type Envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Domain  *DomainRecord  `json:"domain,omitempty"`
	Domains []DomainRecord `json:"domains,omitempty"`
	Length  *int           `json:"length,omitempty"`
	Chain   []Block        `json:"chain,omitempty"`
	Valid   *bool          `json:"valid,omitempty"`
}

// ChainSnapshot is a fetched chain together with the server-reported length
type ChainSnapshot struct {
	Length int
	Blocks []Block
}

// Health is the body of GET /health
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
