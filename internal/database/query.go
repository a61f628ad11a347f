package database

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"trading-bot-store-go/internal/models"
)

// TradeFilter selects trades by equality on pair and/or action, an inclusive
// timestamp range, and an optional result cap. Zero values mean "no filter".
type TradeFilter struct {
	Pair   string
	Action string
	Start  time.Time
	End    time.Time
	Limit  int
}

// ScanFilter selects market scans by pair and/or signal label.
type ScanFilter struct {
	Pair   string
	Signal string
	Start  time.Time
	End    time.Time
	Limit  int
}

// StatusFilter selects bot status events by status label.
type StatusFilter struct {
	Status string
	Start  time.Time
	End    time.Time
	Limit  int
}

func applyRange(q *gorm.DB, start, end time.Time) *gorm.DB {
	if !start.IsZero() {
		q = q.Where("timestamp >= ?", start.UTC())
	}
	if !end.IsZero() {
		q = q.Where("timestamp <= ?", end.UTC())
	}
	return q
}

func applyLimit(q *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

// GetTrades returns the filtered trades newest-first with the cumulative net
// profit attached to each row. A failed read is logged and returned as an
// empty slice; callers cannot distinguish that from "no matching data".
func (s *Store) GetTrades(f TradeFilter) []models.Trade {
	var trades []models.Trade
	ok := s.runRead("get_trades", func(db *gorm.DB) error {
		q := db.Model(&models.Trade{})
		if f.Pair != "" {
			q = q.Where("pair = ?", f.Pair)
		}
		if f.Action != "" {
			q = q.Where("action = ?", f.Action)
		}
		q = applyRange(q, f.Start, f.End)
		q = applyLimit(q.Order("timestamp DESC, id DESC"), f.Limit)
		return q.Find(&trades).Error
	})
	if !ok {
		return nil
	}

	attachCumulativeNetProfit(trades)
	sortTradesNewestFirst(trades)

	s.logger.Debug("Retrieved trades", zap.Int("count", len(trades)))
	return trades
}

// attachCumulativeNetProfit computes the running net profit total over the
// set in chronological order, treating absent net profit as zero. It leaves
// the slice chronologically sorted; presentation order is a separate concern
// (sortTradesNewestFirst) so an ordering change cannot alter the totals.
func attachCumulativeNetProfit(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].Timestamp.Equal(trades[j].Timestamp) {
			return trades[i].Timestamp.Before(trades[j].Timestamp)
		}
		return trades[i].ID < trades[j].ID
	})

	total := 0.0
	for i := range trades {
		if np := trades[i].NetProfit; np != nil {
			total += *np
		}
		trades[i].CumulativeNetProfit = total
	}
}

// sortTradesNewestFirst applies the public presentation order: descending
// timestamp, ties broken by descending identifier.
func sortTradesNewestFirst(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].Timestamp.Equal(trades[j].Timestamp) {
			return trades[i].Timestamp.After(trades[j].Timestamp)
		}
		return trades[i].ID > trades[j].ID
	})
}

// GetScans returns the filtered market scans newest-first, empty on failure.
func (s *Store) GetScans(f ScanFilter) []models.MarketScan {
	var scans []models.MarketScan
	ok := s.runRead("get_scans", func(db *gorm.DB) error {
		q := db.Model(&models.MarketScan{})
		if f.Pair != "" {
			q = q.Where("pair = ?", f.Pair)
		}
		if f.Signal != "" {
			q = q.Where("signal = ?", f.Signal)
		}
		q = applyRange(q, f.Start, f.End)
		q = applyLimit(q.Order("timestamp DESC, id DESC"), f.Limit)
		return q.Find(&scans).Error
	})
	if !ok {
		return nil
	}

	s.logger.Debug("Retrieved market scans", zap.Int("count", len(scans)))
	return scans
}

// GetStatusEvents returns the filtered bot status events newest-first, empty
// on failure.
func (s *Store) GetStatusEvents(f StatusFilter) []models.BotStatus {
	var events []models.BotStatus
	ok := s.runRead("get_status_events", func(db *gorm.DB) error {
		q := db.Model(&models.BotStatus{})
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		q = applyRange(q, f.Start, f.End)
		q = applyLimit(q.Order("timestamp DESC, id DESC"), f.Limit)
		return q.Find(&events).Error
	})
	if !ok {
		return nil
	}

	s.logger.Debug("Retrieved bot status events", zap.Int("count", len(events)))
	return events
}

// GetLatestScan returns the most recent scan for pair, or for any pair when
// pair is empty. Nil means no matching scan exists (or the read failed).
func (s *Store) GetLatestScan(pair string) *models.MarketScan {
	var scans []models.MarketScan
	ok := s.runRead("get_latest_scan", func(db *gorm.DB) error {
		q := db.Model(&models.MarketScan{})
		if pair != "" {
			q = q.Where("pair = ?", pair)
		}
		return q.Order("timestamp DESC, id DESC").Limit(1).Find(&scans).Error
	})
	if !ok || len(scans) == 0 {
		return nil
	}
	return &scans[0]
}

// GetLatestStatus returns the most recent bot status event, or nil when the
// log is empty (or the read failed).
func (s *Store) GetLatestStatus() *models.BotStatus {
	var events []models.BotStatus
	ok := s.runRead("get_latest_status", func(db *gorm.DB) error {
		return db.Model(&models.BotStatus{}).
			Order("timestamp DESC, id DESC").Limit(1).Find(&events).Error
	})
	if !ok || len(events) == 0 {
		return nil
	}
	return &events[0]
}
