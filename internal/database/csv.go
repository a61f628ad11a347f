package database

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"trading-bot-store-go/internal/models"
)

// Canonical trade column order for the CSV interchange format.
var csvColumns = []string{
	"timestamp", "pair", "action", "price", "quantity",
	"net_profit", "profit_pct", "order_id", "strategy",
}

var csvRequiredColumns = []string{"timestamp", "pair", "action", "price", "quantity"}

// Timestamp layouts accepted on import, tried in order.
var csvTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ImportCSV reads trades from a CSV file into the store. The header must
// contain the required columns (timestamp, pair, action, price, quantity);
// missing any of them aborts the import with zero rows written and an
// ErrValidation the caller can inspect without the batch stopping. Optional
// columns are taken only when present ("profit" is accepted as an alias for
// "net_profit"). All rows are written in one transaction: a failure anywhere
// rolls the whole batch back.
func (s *Store) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", ErrValidation, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: read header of %s: %v", ErrValidation, path, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	// database.py accepted "profit" for the net profit column.
	if _, ok := cols["net_profit"]; !ok {
		if i, ok := cols["profit"]; ok {
			cols["net_profit"] = i
		}
	}

	for _, name := range csvRequiredColumns {
		if _, ok := cols[name]; !ok {
			return 0, fmt.Errorf("%w: CSV file missing required column %q", ErrValidation, name)
		}
	}

	createdAt := now()
	var trades []models.Trade
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %v", ErrValidation, line, err)
		}

		trade, err := parseCSVTrade(record, cols)
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %v", ErrValidation, line, err)
		}
		trade.CreatedAt = createdAt
		trades = append(trades, trade)
	}

	if len(trades) == 0 {
		s.logger.Info("CSV import found no rows", zap.String("path", path))
		return 0, nil
	}

	err = s.runWrite(func(tx *gorm.DB) error {
		return tx.Create(&trades).Error
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Imported trades from CSV",
		zap.Int("count", len(trades)), zap.String("path", path))
	return len(trades), nil
}

func parseCSVTrade(record []string, cols map[string]int) (models.Trade, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ts, err := parseCSVTime(field("timestamp"))
	if err != nil {
		return models.Trade{}, err
	}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil {
		return models.Trade{}, fmt.Errorf("invalid price %q", field("price"))
	}
	quantity, err := strconv.ParseFloat(field("quantity"), 64)
	if err != nil {
		return models.Trade{}, fmt.Errorf("invalid quantity %q", field("quantity"))
	}

	trade := models.Trade{
		Timestamp: ts,
		Pair:      field("pair"),
		Action:    field("action"),
		Price:     price,
		Quantity:  quantity,
	}
	if trade.Pair == "" {
		return models.Trade{}, fmt.Errorf("empty pair")
	}

	if v := field("net_profit"); v != "" {
		np, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Trade{}, fmt.Errorf("invalid net_profit %q", v)
		}
		trade.NetProfit = &np
	}
	if v := field("profit_pct"); v != "" {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Trade{}, fmt.Errorf("invalid profit_pct %q", v)
		}
		trade.ProfitPct = &pct
	}
	if v := field("order_id"); v != "" {
		trade.OrderID = &v
	}
	if v := field("strategy"); v != "" {
		trade.Strategy = &v
	}
	return trade, nil
}

func parseCSVTime(value string) (time.Time, error) {
	for _, layout := range csvTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// ExportCSV writes the trades in the inclusive [from, to] range (zero values
// widen the range) to a CSV file in the canonical column order, rows in the
// query's newest-first order. It never fails the caller: any error is logged
// and zero is returned.
func (s *Store) ExportCSV(path string, from, to time.Time) int {
	trades := s.GetTrades(TradeFilter{Start: from, End: to})

	f, err := os.Create(path)
	if err != nil {
		s.logger.Error("CSV export failed", zap.String("path", path), zap.Error(err))
		return 0
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		s.logger.Error("CSV export failed", zap.String("path", path), zap.Error(err))
		return 0
	}
	for _, t := range trades {
		if err := w.Write(csvTradeRecord(t)); err != nil {
			s.logger.Error("CSV export failed", zap.String("path", path), zap.Error(err))
			return 0
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("CSV export failed", zap.String("path", path), zap.Error(err))
		return 0
	}

	s.logger.Info("Exported trades to CSV",
		zap.Int("count", len(trades)), zap.String("path", path))
	return len(trades)
}

func csvTradeRecord(t models.Trade) []string {
	optFloat := func(v *float64) string {
		if v == nil {
			return ""
		}
		return formatFloat(*v)
	}
	optString := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	return []string{
		t.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		t.Pair,
		t.Action,
		formatFloat(t.Price),
		formatFloat(t.Quantity),
		optFloat(t.NetProfit),
		optFloat(t.ProfitPct),
		optString(t.OrderID),
		optString(t.Strategy),
	}
}

// formatFloat renders the shortest representation that round-trips exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
