package models

// Block represents one hash-linked block of the ledger chain.
// Index 0 is the genesis block and conventionally holds no domains.
type Block struct {
	Index        int64          `json:"index"`
	Timestamp    string         `json:"timestamp"`
	Hash         string         `json:"hash"`
	PreviousHash string         `json:"previous_hash"`
	Domains      []DomainRecord `json:"domains"`
}

// IsGenesis reports whether the block carries no domain registrations.
func (b *Block) IsGenesis() bool {
	return len(b.Domains) == 0
}
