package database

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultDSN is the store location used when none is supplied.
const DefaultDSN = "trading_bot.db"

var (
	defaultMu    sync.Mutex
	defaultStore *Store
)

// Default returns the process-wide store handle, opening it on the first
// call. The dsn and logger only matter on that first call; every later call
// returns the same handle and silently ignores a differing location. A
// failed open leaves the registry empty so a later call can retry.
//
// New code should prefer an explicit Open handle passed down from the entry
// point; Default exists for embedders relying on the first-call-wins
// behaviour of the original bot.
func Default(dsn string, logger *zap.Logger) (*Store, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultStore != nil {
		return defaultStore, nil
	}

	if dsn == "" {
		dsn = DefaultDSN
	}
	s, err := Open(dsn, logger)
	if err != nil {
		return nil, err
	}
	defaultStore = s
	return s, nil
}

// resetDefault tears down the registry. Test use only.
func resetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultStore != nil {
		_ = defaultStore.Close()
		defaultStore = nil
	}
}
