package models

// DomainRecord represents a registered name→address mapping
type DomainRecord struct {
	DomainName   string `json:"domain_name"`
	IPAddress    string `json:"ip_address"`
	Owner        string `json:"owner"`
	RegisteredAt string `json:"registered_at"`
}
