package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IndicatorKind tags the value carried by an Indicator.
type IndicatorKind string

const (
	IndicatorNum IndicatorKind = "num"
	IndicatorStr IndicatorKind = "str"
)

// Indicator is one key→value entry of a market scan's indicator mapping.
// The value is either numeric or textual, selected by Kind.
type Indicator struct {
	Key  string        `json:"key"`
	Kind IndicatorKind `json:"kind"`
	Num  float64       `json:"num,omitempty"`
	Str  string        `json:"str,omitempty"`
}

// IndicatorSet is an ordered indicator mapping. It is persisted as a single
// versioned JSON blob so the round trip is lossless for both value kinds and
// insertion order survives.
type IndicatorSet []Indicator

// NumIndicator builds a numeric indicator entry.
func NumIndicator(key string, value float64) Indicator {
	return Indicator{Key: key, Kind: IndicatorNum, Num: value}
}

// StrIndicator builds a textual indicator entry.
func StrIndicator(key, value string) Indicator {
	return Indicator{Key: key, Kind: IndicatorStr, Str: value}
}

// Num returns the numeric value stored under key.
func (s IndicatorSet) Num(key string) (float64, bool) {
	for _, ind := range s {
		if ind.Key == key && ind.Kind == IndicatorNum {
			return ind.Num, true
		}
	}
	return 0, false
}

// Str returns the textual value stored under key.
func (s IndicatorSet) Str(key string) (string, bool) {
	for _, ind := range s {
		if ind.Key == key && ind.Kind == IndicatorStr {
			return ind.Str, true
		}
	}
	return "", false
}

// Validate reports an error for entries that cannot be encoded unambiguously.
func (s IndicatorSet) Validate() error {
	for _, ind := range s {
		if ind.Key == "" {
			return fmt.Errorf("indicator with empty key")
		}
		if ind.Kind != IndicatorNum && ind.Kind != IndicatorStr {
			return fmt.Errorf("indicator %q has unknown kind %q", ind.Key, ind.Kind)
		}
	}
	return nil
}

// indicatorEnvelope is the persisted wire form. The version field lets a later
// encoding change coexist with rows written by this one.
type indicatorEnvelope struct {
	Version    int          `json:"v"`
	Indicators IndicatorSet `json:"indicators"`
}

const indicatorEncodingVersion = 1

// Value implements driver.Valuer. An empty set is stored as NULL.
func (s IndicatorSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(indicatorEnvelope{Version: indicatorEncodingVersion, Indicators: s})
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (s *IndicatorSet) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into IndicatorSet", src)
	}

	if len(raw) == 0 {
		*s = nil
		return nil
	}

	var env indicatorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode indicator blob: %w", err)
	}
	if env.Version != indicatorEncodingVersion {
		return fmt.Errorf("unsupported indicator encoding version %d", env.Version)
	}
	*s = env.Indicators
	return nil
}
