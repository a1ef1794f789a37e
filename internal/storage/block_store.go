package storage

import (
	"encoding/json"
	"fmt"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
)

// BlockStore handles block storage operations
type BlockStore struct {
	db   *PebbleDB
	meta *MetaStore
}

// NewBlockStore creates a new BlockStore
func NewBlockStore(db *PebbleDB) *BlockStore {
	return &BlockStore{db: db, meta: NewMetaStore(db)}
}

// blockKey zero-pads the index so key order is chain order
func blockKey(index int64) []byte {
	return []byte(fmt.Sprintf("%012d", index))
}

// Append stores a block, indexes every domain it carries and moves the chain
// tip, in one atomic batch.
func (s *BlockStore) Append(block *models.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("failed to marshal block: %w", err)
	}

	batch := s.db.NewBatch()
	defer batch.Destroy()

	if err := s.db.PutBatch(batch, CFBlocks, blockKey(block.Index), data); err != nil {
		return err
	}
	for _, rec := range block.Domains {
		if err := s.db.PutBatch(batch, CFDomains, domainKey(rec.DomainName), blockKey(block.Index)); err != nil {
			return err
		}
	}
	if err := s.meta.setTipBatch(batch, block.Index); err != nil {
		return err
	}

	return s.db.WriteBatch(batch)
}

// GetByIndex retrieves a block by its position in the chain
func (s *BlockStore) GetByIndex(index int64) (*models.Block, error) {
	data, err := s.db.Get(CFBlocks, blockKey(index))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var block models.Block
	if err := json.Unmarshal(data, &block); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block: %w", err)
	}
	return &block, nil
}

// GetLatest retrieves the newest block, nil for an empty chain
func (s *BlockStore) GetLatest() (*models.Block, error) {
	tip, err := s.meta.GetTip()
	if err != nil {
		return nil, err
	}
	if tip < 0 {
		return nil, nil
	}
	return s.GetByIndex(tip)
}

// All returns every block, oldest first
func (s *BlockStore) All() ([]models.Block, error) {
	iter, err := s.db.NewIterator(CFBlocks)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	blocks := make([]models.Block, 0)
	for ; iter.Valid(); iter.Next() {
		var block models.Block
		if err := json.Unmarshal(iter.Value(), &block); err != nil {
			return nil, fmt.Errorf("failed to unmarshal block %s: %w", iter.Key(), err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// Put overwrites a stored block without touching the indexes
func (s *BlockStore) Put(block *models.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("failed to marshal block: %w", err)
	}
	return s.db.Put(CFBlocks, blockKey(block.Index), data)
}
