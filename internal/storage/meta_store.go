package storage

import (
	"fmt"
	"strconv"
)

var tipKey = []byte("tip")

// MetaStore holds chain-level bookkeeping
type MetaStore struct {
	db *PebbleDB
}

// NewMetaStore creates a new MetaStore
func NewMetaStore(db *PebbleDB) *MetaStore {
	return &MetaStore{db: db}
}

// GetTip returns the index of the newest stored block, -1 for an empty chain
func (s *MetaStore) GetTip() (int64, error) {
	data, err := s.db.Get(CFMeta, tipKey)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return -1, nil
	}

	tip, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse chain tip: %w", err)
	}
	return tip, nil
}

func (s *MetaStore) setTipBatch(batch *WriteBatch, index int64) error {
	return s.db.PutBatch(batch, CFMeta, tipKey, []byte(strconv.FormatInt(index, 10)))
}
