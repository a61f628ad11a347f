package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trading-bot-store-go/internal/models"
)

// newTestStore opens a store backed by a temporary sqlite file.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "trades.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

// insertTrade writes a trade with a caller-controlled timestamp, bypassing
// the recorder's wall clock so ordering tests are deterministic.
func insertTrade(t *testing.T, s *Store, ts time.Time, pair, action string, netProfit *float64) models.Trade {
	t.Helper()
	trade := models.Trade{
		Timestamp: ts.UTC(),
		Pair:      pair,
		Action:    action,
		Price:     100,
		Quantity:  1,
		NetProfit: netProfit,
		CreatedAt: ts.UTC(),
	}
	require.NoError(t, s.db.Create(&trade).Error)
	return trade
}

func insertScan(t *testing.T, s *Store, ts time.Time, pair, signal string) models.MarketScan {
	t.Helper()
	scan := models.MarketScan{
		Timestamp: ts.UTC(),
		Pair:      pair,
		Signal:    signal,
		Price:     100,
		CreatedAt: ts.UTC(),
	}
	require.NoError(t, s.db.Create(&scan).Error)
	return scan
}

func TestOpenIsIdempotentAcrossRestarts(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "trades.db")

	s1, err := Open(dsn, zap.NewNop())
	require.NoError(t, err)

	id, err := s1.RecordTrade(TradeEntry{Pair: "BTCUSDT", Action: models.ActionBuy, Price: 50000, Quantity: 0.1})
	require.NoError(t, err)
	assert.Positive(t, id)
	require.NoError(t, s1.Close())

	// Reopening the same file must re-run schema creation without data loss.
	s2, err := Open(dsn, zap.NewNop())
	require.NoError(t, err)
	defer s2.Close()

	trades := s2.GetTrades(TradeFilter{Pair: "BTCUSDT"})
	require.Len(t, trades, 1)
	assert.Equal(t, id, trades[0].ID)
}

func TestOpenFailsOnUnusableLocation(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "trades.db"), zap.NewNop())
	assert.Error(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "trades.db"), zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestWriteAfterCloseFails(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "trades.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.RecordTrade(TradeEntry{Pair: "BTCUSDT", Action: models.ActionBuy, Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, ErrConnection)
}

func TestReadAfterCloseReturnsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "trades.db"), zap.NewNop())
	require.NoError(t, err)

	_, err = s.RecordTrade(TradeEntry{Pair: "BTCUSDT", Action: models.ActionBuy, Price: 1, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Empty(t, s.GetTrades(TradeFilter{}))
	assert.Nil(t, s.GetLatestStatus())
	assert.Nil(t, s.GetLatestScan(""))
}

func TestWriteRecoversFromDroppedConnection(t *testing.T) {
	s := newTestStore(t)

	// Kill the underlying connection behind the store's back.
	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	id, err := s.RecordTrade(TradeEntry{Pair: "BTCUSDT", Action: models.ActionBuy, Price: 50000, Quantity: 0.1})
	require.NoError(t, err)
	assert.Positive(t, id)

	trades := s.GetTrades(TradeFilter{Pair: "BTCUSDT"})
	require.Len(t, trades, 1)
}
