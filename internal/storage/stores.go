package storage

// LedgerStores holds every store of the development ledger
type LedgerStores struct {
	DB          *PebbleDB
	BlockStore  *BlockStore
	DomainStore *DomainStore
	MetaStore   *MetaStore
}

// NewLedgerStores creates all stores using the given database
func NewLedgerStores(db *PebbleDB) *LedgerStores {
	return &LedgerStores{
		DB:          db,
		BlockStore:  NewBlockStore(db),
		DomainStore: NewDomainStore(db),
		MetaStore:   NewMetaStore(db),
	}
}

// Close closes the database
func (ls *LedgerStores) Close() error {
	return ls.DB.Close()
}
