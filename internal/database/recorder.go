package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"trading-bot-store-go/internal/models"
)

// TradeEntry carries the inputs for one trade record. Pointer fields are
// optional and stored as NULL when nil.
type TradeEntry struct {
	Pair      string
	Action    string // models.ActionBuy or models.ActionSell
	Price     float64
	Quantity  float64
	NetProfit *float64
	ProfitPct *float64
	OrderID   *string
	Strategy  *string
}

func (e TradeEntry) validate() error {
	if e.Pair == "" {
		return fmt.Errorf("%w: trade pair is required", ErrValidation)
	}
	if e.Action != models.ActionBuy && e.Action != models.ActionSell {
		return fmt.Errorf("%w: trade action must be %q or %q, got %q",
			ErrValidation, models.ActionBuy, models.ActionSell, e.Action)
	}
	if e.Price <= 0 {
		return fmt.Errorf("%w: trade price must be positive", ErrValidation)
	}
	if e.Quantity <= 0 {
		return fmt.Errorf("%w: trade quantity must be positive", ErrValidation)
	}
	return nil
}

// ScanEntry carries the inputs for one market scan record.
type ScanEntry struct {
	Pair       string
	Signal     string
	Price      float64
	Strategy   *string
	Interval   *string
	Indicators models.IndicatorSet
}

func (e ScanEntry) validate() error {
	if e.Pair == "" {
		return fmt.Errorf("%w: scan pair is required", ErrValidation)
	}
	if err := e.Indicators.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// StatusEntry carries the inputs for one bot status event.
type StatusEntry struct {
	Status       string
	AccountValue *float64
	ActivePairs  []string
	Message      *string
}

func (e StatusEntry) validate() error {
	if e.Status == "" {
		return fmt.Errorf("%w: status label is required", ErrValidation)
	}
	if err := models.PairList(e.ActivePairs).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// RecordTrade appends one trade in a single transaction and returns its
// store-assigned identifier. The record timestamp and created_at are stamped
// with the same write-time UTC instant.
func (s *Store) RecordTrade(e TradeEntry) (uint, error) {
	if err := e.validate(); err != nil {
		return 0, err
	}

	ts := now()
	trade := models.Trade{
		Timestamp: ts,
		Pair:      e.Pair,
		Action:    e.Action,
		Price:     e.Price,
		Quantity:  e.Quantity,
		NetProfit: e.NetProfit,
		ProfitPct: e.ProfitPct,
		OrderID:   e.OrderID,
		Strategy:  e.Strategy,
		CreatedAt: ts,
	}

	err := s.runWrite(func(tx *gorm.DB) error {
		return tx.Create(&trade).Error
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Trade recorded",
		zap.Uint("id", trade.ID),
		zap.String("pair", e.Pair),
		zap.String("action", e.Action),
		zap.Float64("price", e.Price))
	return trade.ID, nil
}

// RecordScan appends one market scan and returns its identifier. The
// indicator mapping is serialized to a versioned blob by the model layer.
func (s *Store) RecordScan(e ScanEntry) (uint, error) {
	if err := e.validate(); err != nil {
		return 0, err
	}

	ts := now()
	scan := models.MarketScan{
		Timestamp:  ts,
		Pair:       e.Pair,
		Signal:     e.Signal,
		Price:      e.Price,
		Strategy:   e.Strategy,
		Interval:   e.Interval,
		Indicators: e.Indicators,
		CreatedAt:  ts,
	}

	err := s.runWrite(func(tx *gorm.DB) error {
		return tx.Create(&scan).Error
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Market scan recorded",
		zap.Uint("id", scan.ID),
		zap.String("pair", e.Pair),
		zap.String("signal", e.Signal))
	return scan.ID, nil
}

// RecordStatus appends one bot status event and returns its identifier. A
// pair symbol containing the list delimiter is rejected with ErrValidation.
func (s *Store) RecordStatus(e StatusEntry) (uint, error) {
	if err := e.validate(); err != nil {
		return 0, err
	}

	ts := now()
	status := models.BotStatus{
		Timestamp:    ts,
		Status:       e.Status,
		AccountValue: e.AccountValue,
		ActivePairs:  models.PairList(e.ActivePairs),
		Message:      e.Message,
		CreatedAt:    ts,
	}

	err := s.runWrite(func(tx *gorm.DB) error {
		return tx.Create(&status).Error
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Bot status recorded",
		zap.Uint("id", status.ID),
		zap.String("status", e.Status))
	return status.ID, nil
}
