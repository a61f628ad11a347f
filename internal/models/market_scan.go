package models

import "time"

// MarketScan is an immutable record of one evaluation of market conditions
// against a strategy, whether or not a trade resulted. Signal labels are
// free-form ("BUY", "hold", ...) and stored with case preserved.
type MarketScan struct {
	ID         uint      `gorm:"primaryKey"`
	Timestamp  time.Time `gorm:"not null;index:idx_market_scans_timestamp"`
	Pair       string    `gorm:"not null"`
	Signal     string
	Price      float64
	Strategy   *string
	Interval   *string
	Indicators IndicatorSet `gorm:"type:text"`
	CreatedAt  time.Time    `gorm:"not null"`
}

func (MarketScan) TableName() string { return "market_scans" }
