// Package ledger is a development implementation of the ledger DNS service: a
// hash-linked chain of blocks, one per registration, persisted in pebble.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gologme/log"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/storage"
)

const (
	// APIVersion is reported on the health endpoint
	APIVersion = "1.0.0"
	// GenesisPreviousHash is the previous-hash value of block 0
	GenesisPreviousHash = "0"
)

var (
	ErrDomainExists   = errors.New("domain already registered")
	ErrDomainNotFound = errors.New("domain not found")
	ErrInvalidRecord  = errors.New("invalid domain record")
)

// Logger is the diagnostic logger
type Logger interface {
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
}

// Ledger appends registrations to the chain. Writes are serialized.
type Ledger struct {
	mu     sync.Mutex
	stores *storage.LedgerStores
	log    Logger
	now    func() time.Time
}

// New opens a ledger on stores, writing the genesis block if the chain is empty
func New(stores *storage.LedgerStores, logger Logger) (*Ledger, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	l := &Ledger{
		stores: stores,
		log:    logger,
		now:    func() time.Time { return time.Now().UTC() },
	}

	latest, err := stores.BlockStore.GetLatest()
	if err != nil {
		return nil, fmt.Errorf("failed to read chain tip: %w", err)
	}
	if latest == nil {
		genesis, err := l.newBlock(0, GenesisPreviousHash, []models.DomainRecord{})
		if err != nil {
			return nil, err
		}
		if err := stores.BlockStore.Append(genesis); err != nil {
			return nil, fmt.Errorf("failed to write genesis block: %w", err)
		}
		l.log.Infof("[ledger] created genesis block %s", genesis.Hash)
	}
	return l, nil
}

// SetClock replaces the timestamp source
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// Register records a new domain in its own block
func (l *Ledger) Register(req models.RegisterRequest) (models.DomainRecord, error) {
	req.DomainName = strings.TrimSpace(req.DomainName)
	req.IPAddress = strings.TrimSpace(req.IPAddress)
	req.Owner = strings.TrimSpace(req.Owner)

	if req.DomainName == "" || req.IPAddress == "" {
		return models.DomainRecord{}, fmt.Errorf("%w: domain name and IP address are required", ErrInvalidRecord)
	}
	if net.ParseIP(req.IPAddress) == nil {
		return models.DomainRecord{}, fmt.Errorf("%w: invalid IP address %s", ErrInvalidRecord, req.IPAddress)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	exists, err := l.stores.DomainStore.Exists(req.DomainName)
	if err != nil {
		return models.DomainRecord{}, err
	}
	if exists {
		return models.DomainRecord{}, ErrDomainExists
	}

	latest, err := l.stores.BlockStore.GetLatest()
	if err != nil {
		return models.DomainRecord{}, err
	}
	if latest == nil {
		return models.DomainRecord{}, fmt.Errorf("chain has no genesis block")
	}

	rec := models.DomainRecord{
		DomainName:   req.DomainName,
		IPAddress:    req.IPAddress,
		Owner:        req.Owner,
		RegisteredAt: l.now().Format(time.RFC3339),
	}
	block, err := l.newBlock(latest.Index+1, latest.Hash, []models.DomainRecord{rec})
	if err != nil {
		return models.DomainRecord{}, err
	}
	if err := l.stores.BlockStore.Append(block); err != nil {
		return models.DomainRecord{}, fmt.Errorf("failed to append block: %w", err)
	}

	l.log.Infof("[ledger] block #%d registers %s → %s", block.Index, rec.DomainName, rec.IPAddress)
	return rec, nil
}

// Lookup resolves a registered name
func (l *Ledger) Lookup(name string) (models.DomainRecord, error) {
	rec, err := l.stores.DomainStore.Get(strings.TrimSpace(name))
	if err != nil {
		return models.DomainRecord{}, err
	}
	if rec == nil {
		return models.DomainRecord{}, ErrDomainNotFound
	}
	return *rec, nil
}

// Domains returns every registered record in registration order
func (l *Ledger) Domains() ([]models.DomainRecord, error) {
	return l.stores.DomainStore.All()
}

// Chain returns the whole chain, genesis first
func (l *Ledger) Chain() ([]models.Block, error) {
	return l.stores.BlockStore.All()
}

// Validate recomputes every block hash and checks every link
func (l *Ledger) Validate() (bool, error) {
	blocks, err := l.stores.BlockStore.All()
	if err != nil {
		return false, err
	}
	for i := range blocks {
		b := &blocks[i]
		if b.Index != int64(i) {
			l.log.Warnf("[ledger] block at position %d has index %d", i, b.Index)
			return false, nil
		}
		hash, err := hashBlock(b)
		if err != nil {
			return false, err
		}
		if hash != b.Hash {
			l.log.Warnf("[ledger] block #%d hash mismatch", b.Index)
			return false, nil
		}
		prev := GenesisPreviousHash
		if i > 0 {
			prev = blocks[i-1].Hash
		}
		if b.PreviousHash != prev {
			l.log.Warnf("[ledger] block #%d is not linked to its predecessor", b.Index)
			return false, nil
		}
	}
	return true, nil
}

func (l *Ledger) newBlock(index int64, prev string, domains []models.DomainRecord) (*models.Block, error) {
	b := &models.Block{
		Index:        index,
		Timestamp:    l.now().Format(time.RFC3339Nano),
		PreviousHash: prev,
		Domains:      domains,
	}
	hash, err := hashBlock(b)
	if err != nil {
		return nil, err
	}
	b.Hash = hash
	return b, nil
}

// hashBlock is the double SHA-256 of the block's content, hash field excluded
func hashBlock(b *models.Block) (string, error) {
	content := struct {
		Index        int64                 `json:"index"`
		Timestamp    string                `json:"timestamp"`
		PreviousHash string                `json:"previous_hash"`
		Domains      []models.DomainRecord `json:"domains"`
	}{b.Index, b.Timestamp, b.PreviousHash, b.Domains}

	data, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("failed to encode block #%d: %w", b.Index, err)
	}
	return chainhash.DoubleHashH(data).String(), nil
}
