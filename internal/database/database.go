package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trading-bot-store-go/internal/models"
)

// Store is a single-file SQLite store for trading activity: executed trades,
// market scans and bot status events. All three tables are append-only logs.
//
// A Store holds exactly one underlying connection and performs no internal
// locking; callers that share one across goroutines must serialize access
// externally.
type Store struct {
	dsn    string
	db     *gorm.DB
	logger *zap.Logger
	closed bool
}

// Open connects to the SQLite file at dsn and ensures the schema exists.
// Schema creation is idempotent: opening an already-initialized store loses
// no data. A nil logger is replaced with a no-op one.
func Open(dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := openGorm(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrConnection, dsn, err)
	}

	s := &Store{dsn: dsn, db: db, logger: logger}
	if err := s.ensureSchema(); err != nil {
		_ = s.Close()
		return nil, err
	}

	logger.Info("Database initialized", zap.String("dsn", dsn))
	return s, nil
}

func openGorm(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// ensureSchema materializes the three tables and their indexes. AutoMigrate
// only adds what is missing, so re-running against a populated store is safe.
func (s *Store) ensureSchema() error {
	err := s.db.AutoMigrate(&models.Trade{}, &models.MarketScan{}, &models.BotStatus{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// Close releases the underlying connection. Calling it more than once is a
// no-op.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	sqlDB, err := s.db.DB()
	if err != nil {
		return nil
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	s.logger.Info("Database connection closed")
	return nil
}

// ping checks the health of the current connection.
func (s *Store) ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// reconnect replaces a dropped connection with a fresh one.
func (s *Store) reconnect() error {
	db, err := openGorm(s.dsn)
	if err != nil {
		return err
	}
	s.db = db
	s.logger.Warn("Database connection re-established", zap.String("dsn", s.dsn))
	return nil
}

// runWrite executes fn inside one transaction. The connection is
// health-checked first; a failure mid-write that left the connection dead gets
// exactly one reconnect-and-retry before the error propagates.
func (s *Store) runWrite(fn func(tx *gorm.DB) error) error {
	if s.closed {
		return fmt.Errorf("%w: store is closed", ErrConnection)
	}
	if err := s.ping(); err != nil {
		if rerr := s.reconnect(); rerr != nil {
			return fmt.Errorf("%w: %v", ErrConnection, rerr)
		}
	}

	err := s.db.Transaction(fn)
	if err == nil {
		return nil
	}

	if s.ping() != nil {
		if rerr := s.reconnect(); rerr != nil {
			return fmt.Errorf("%w: %v", ErrConnection, rerr)
		}
		if err = s.db.Transaction(fn); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrWrite, err)
}

// runRead executes fn and absorbs any failure: the error is logged and the
// caller is expected to fall back to an empty result. Under this policy an
// empty result is ambiguous between "no matching data" and "read failed".
func (s *Store) runRead(op string, fn func(db *gorm.DB) error) bool {
	if s.closed {
		s.logger.Error("Read on closed store, returning empty result", zap.String("op", op))
		return false
	}
	if err := fn(s.db); err != nil {
		wrapped := fmt.Errorf("%w: %s: %v", ErrRead, op, err)
		s.logger.Error("Read failed, returning empty result", zap.String("op", op), zap.Error(wrapped))
		return false
	}
	return true
}

// now is the single write-time clock: UTC at second precision, used for both
// the record timestamp and created_at of freshly written rows.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
