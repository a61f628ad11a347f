package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-bot-store-go/internal/models"
)

func TestRecordTradeRoundTrip(t *testing.T) {
	s := newTestStore(t)

	id, err := s.RecordTrade(TradeEntry{
		Pair:     "BTCUSDT",
		Action:   models.ActionBuy,
		Price:    50000.0,
		Quantity: 0.1,
		Strategy: sptr("TEST"),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	trades := s.GetTrades(TradeFilter{Pair: "BTCUSDT"})
	require.Len(t, trades, 1)

	got := trades[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "BTCUSDT", got.Pair)
	assert.Equal(t, models.ActionBuy, got.Action)
	assert.Equal(t, 50000.0, got.Price)
	assert.Equal(t, 0.1, got.Quantity)
	require.NotNil(t, got.Strategy)
	assert.Equal(t, "TEST", *got.Strategy)
	assert.Nil(t, got.NetProfit)
	assert.Nil(t, got.ProfitPct)
	assert.Nil(t, got.OrderID)

	// Freshly recorded rows carry one write-time stamp for both fields.
	assert.True(t, got.Timestamp.Equal(got.CreatedAt))
	assert.WithinDuration(t, time.Now().UTC(), got.Timestamp, 10*time.Second)
}

func TestRecordTradeOptionalFields(t *testing.T) {
	s := newTestStore(t)

	id, err := s.RecordTrade(TradeEntry{
		Pair:      "ETHUSDT",
		Action:    models.ActionSell,
		Price:     3200.5,
		Quantity:  2,
		NetProfit: fptr(-12.75),
		ProfitPct: fptr(-0.4),
		OrderID:   sptr("order-8841"),
		Strategy:  sptr("RSI"),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	trades := s.GetTrades(TradeFilter{Pair: "ETHUSDT", Action: models.ActionSell})
	require.Len(t, trades, 1)

	got := trades[0]
	require.NotNil(t, got.NetProfit)
	assert.Equal(t, -12.75, *got.NetProfit)
	require.NotNil(t, got.ProfitPct)
	assert.Equal(t, -0.4, *got.ProfitPct)
	require.NotNil(t, got.OrderID)
	assert.Equal(t, "order-8841", *got.OrderID)
}

func TestRecordTradeValidation(t *testing.T) {
	s := newTestStore(t)

	testCases := []struct {
		name  string
		entry TradeEntry
	}{
		{name: "missing pair", entry: TradeEntry{Action: models.ActionBuy, Price: 1, Quantity: 1}},
		{name: "unknown action", entry: TradeEntry{Pair: "BTCUSDT", Action: "HOLD", Price: 1, Quantity: 1}},
		{name: "zero price", entry: TradeEntry{Pair: "BTCUSDT", Action: models.ActionBuy, Price: 0, Quantity: 1}},
		{name: "negative quantity", entry: TradeEntry{Pair: "BTCUSDT", Action: models.ActionBuy, Price: 1, Quantity: -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.RecordTrade(tc.entry)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.Empty(t, s.GetTrades(TradeFilter{}))
}

func TestRecordScanRoundTrip(t *testing.T) {
	s := newTestStore(t)

	indicators := models.IndicatorSet{
		models.NumIndicator("rsi", 30),
		models.NumIndicator("macd", 0.5),
		models.StrIndicator("trend", "bullish"),
	}

	id, err := s.RecordScan(ScanEntry{
		Pair:       "BTCUSDT",
		Signal:     "BUY",
		Price:      50000.0,
		Strategy:   sptr("TEST"),
		Interval:   sptr("1h"),
		Indicators: indicators,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	scans := s.GetScans(ScanFilter{Pair: "BTCUSDT"})
	require.Len(t, scans, 1)

	got := scans[0]
	assert.Equal(t, "BUY", got.Signal)
	assert.Equal(t, 50000.0, got.Price)
	require.NotNil(t, got.Interval)
	assert.Equal(t, "1h", *got.Interval)
	assert.Equal(t, indicators, got.Indicators)
}

func TestRecordScanPreservesSignalCase(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RecordScan(ScanEntry{Pair: "BTCUSDT", Signal: "hold", Price: 1})
	require.NoError(t, err)

	scans := s.GetScans(ScanFilter{Pair: "BTCUSDT", Signal: "hold"})
	require.Len(t, scans, 1)
	assert.Equal(t, "hold", scans[0].Signal)
}

func TestRecordScanEmptyIndicators(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RecordScan(ScanEntry{Pair: "BTCUSDT", Signal: "HOLD", Price: 42000})
	require.NoError(t, err)

	scans := s.GetScans(ScanFilter{Pair: "BTCUSDT"})
	require.Len(t, scans, 1)
	assert.Empty(t, scans[0].Indicators)
}

func TestRecordStatusRoundTrip(t *testing.T) {
	s := newTestStore(t)

	id, err := s.RecordStatus(StatusEntry{
		Status:       "RUNNING",
		AccountValue: fptr(10000.0),
		ActivePairs:  []string{"BTCUSDT", "ETHUSDT"},
		Message:      sptr("Test status"),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got := s.GetLatestStatus()
	require.NotNil(t, got)
	assert.Equal(t, "RUNNING", got.Status)
	require.NotNil(t, got.AccountValue)
	assert.Equal(t, 10000.0, *got.AccountValue)
	assert.Equal(t, models.PairList{"BTCUSDT", "ETHUSDT"}, got.ActivePairs)
	require.NotNil(t, got.Message)
	assert.Equal(t, "Test status", *got.Message)
}

func TestRecordStatusRejectsDelimiterInPair(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RecordStatus(StatusEntry{
		Status:      "RUNNING",
		ActivePairs: []string{"BTCUSDT", "ETH,USDT"},
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, s.GetStatusEvents(StatusFilter{}))
}

func TestRecordStatusRequiresLabel(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RecordStatus(StatusEntry{})
	assert.ErrorIs(t, err, ErrValidation)
}
