package persistence

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// DialectorOpener is an alias for a function that returns a gorm.Dialector for a given DSN.
type DialectorOpener = func(string) gorm.Dialector

var (
	registryMu sync.RWMutex
	openers    = make(map[string]DialectorOpener)
)

// Register adds a new database driver to the registry.
func Register(name string, opener DialectorOpener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	openers[name] = opener
}

// NewStorage opens a database connection for the registered driver name.
func NewStorage(dbType, dsn string, gormConfig *gorm.Config) (*Repository, error) {
	registryMu.RLock()
	opener, ok := openers[dbType]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("persistence: unknown db type %q", dbType)
	}

	if gormConfig == nil {
		// TranslateError turns driver-specific uniqueness violations into
		// gorm.ErrDuplicatedKey across all registered dialects.
		gormConfig = &gorm.Config{TranslateError: true}
	}

	db, err := gorm.Open(opener(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("persistence: open %s: %w", dbType, err)
	}

	return NewRepository(db), nil
}
