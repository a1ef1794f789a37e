package storage

import (
	"strconv"
	"strings"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
)

// DomainStore resolves domain names through the index written by BlockStore.Append
type DomainStore struct {
	db     *PebbleDB
	blocks *BlockStore
}

// NewDomainStore creates a new DomainStore
func NewDomainStore(db *PebbleDB) *DomainStore {
	return &DomainStore{db: db, blocks: NewBlockStore(db)}
}

// domainKey normalises names so lookups are case-insensitive
func domainKey(name string) []byte {
	return []byte(strings.ToLower(name))
}

// Exists reports whether name is registered
func (s *DomainStore) Exists(name string) (bool, error) {
	data, err := s.db.Get(CFDomains, domainKey(name))
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// Get returns the record for name, nil when it is not registered
func (s *DomainStore) Get(name string) (*models.DomainRecord, error) {
	data, err := s.db.Get(CFDomains, domainKey(name))
	if err != nil || data == nil {
		return nil, err
	}

	index, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, err
	}
	block, err := s.blocks.GetByIndex(index)
	if err != nil || block == nil {
		return nil, err
	}

	key := string(domainKey(name))
	for _, rec := range block.Domains {
		if string(domainKey(rec.DomainName)) == key {
			return &rec, nil
		}
	}
	return nil, nil
}

// All returns every registered record in registration order
func (s *DomainStore) All() ([]models.DomainRecord, error) {
	blocks, err := s.blocks.All()
	if err != nil {
		return nil, err
	}

	records := make([]models.DomainRecord, 0)
	for _, b := range blocks {
		records = append(records, b.Domains...)
	}
	return records, nil
}
