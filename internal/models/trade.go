package models

import "time"

// Trade actions accepted by the recorder.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Trade is an immutable record of one executed buy or sell. Rows are only ever
// appended; nothing in this layer updates or deletes them.
type Trade struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"not null;index:idx_trades_timestamp"`
	Pair      string    `gorm:"not null;index:idx_trades_pair"`
	Action    string    `gorm:"not null"` // "BUY" or "SELL"
	Price     float64   `gorm:"not null"`
	Quantity  float64   `gorm:"not null"`
	NetProfit *float64
	ProfitPct *float64
	OrderID   *string
	Strategy  *string
	CreatedAt time.Time `gorm:"not null"`

	// CumulativeNetProfit is derived at query time: the running sum of
	// NetProfit in chronological order over the filtered set. Not persisted.
	CumulativeNetProfit float64 `gorm:"-"`
}

// TableName pins the table name to the persisted schema.
func (Trade) TableName() string { return "trades" }
