package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// BotStatus is an immutable record of a lifecycle transition or health report
// for the owning bot process. Status labels are free-form (e.g. "STARTED",
// "RUNNING", "STOPPED", "ERROR").
type BotStatus struct {
	ID           uint      `gorm:"primaryKey"`
	Timestamp    time.Time `gorm:"not null;index:idx_bot_status_timestamp"`
	Status       string    `gorm:"not null"`
	AccountValue *float64
	ActivePairs  PairList `gorm:"type:text"`
	Message      *string
	CreatedAt    time.Time `gorm:"not null"`
}

func (BotStatus) TableName() string { return "bot_status" }

// pairListDelimiter separates symbols in the persisted active_pairs column.
// A symbol containing it would corrupt the round trip, so such symbols are
// rejected before they reach the database.
const pairListDelimiter = ","

// PairList is an ordered list of pair symbols persisted as a single
// delimiter-joined string column.
type PairList []string

// Validate reports an error if any symbol would break the serialized form.
func (p PairList) Validate() error {
	for _, pair := range p {
		if pair == "" {
			return fmt.Errorf("active pair list contains an empty symbol")
		}
		if strings.Contains(pair, pairListDelimiter) {
			return fmt.Errorf("pair symbol %q contains the list delimiter %q", pair, pairListDelimiter)
		}
	}
	return nil
}

// Value implements driver.Valuer. An empty list is stored as NULL.
func (p PairList) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return strings.Join(p, pairListDelimiter), nil
}

// Scan implements sql.Scanner.
func (p *PairList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case string:
		return p.scanString(v)
	case []byte:
		return p.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into PairList", src)
	}
}

func (p *PairList) scanString(s string) error {
	if s == "" {
		*p = nil
		return nil
	}
	*p = strings.Split(s, pairListDelimiter)
	return nil
}
