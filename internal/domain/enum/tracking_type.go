package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TrackingType decides how a stock item's quantity is interpreted
type TrackingType string

const (
	// TrackingUnit items are counted per piece and depleted by sales
	TrackingUnit TrackingType = "UNIT"
	// TrackingMultiUse items are measured in bulk (grams, ml) and depleted by sales
	TrackingMultiUse TrackingType = "MULTI-USE"
	// TrackingManual items hold a presence flag: 0 needs restock, 1 in stock
	TrackingManual TrackingType = "MANUAL"
)

// ParseTrackingType accepts the canonical names case-insensitively
func ParseTrackingType(s string) (TrackingType, error) {
	t := TrackingType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown tracking type %q", s)
	}
	return t, nil
}

func (t TrackingType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known tracking types
func (t TrackingType) IsValid() bool {
	switch t {
	case TrackingUnit, TrackingMultiUse, TrackingManual:
		return true
	}
	return false
}

// IsDepletable reports whether sales decrement this item's quantity
func (t TrackingType) IsDepletable() bool {
	return t == TrackingUnit || t == TrackingMultiUse
}

func (t TrackingType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *TrackingType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseTrackingType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TrackingType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *TrackingType) Scan(value interface{}) error {
	if value == nil {
		*t = TrackingUnit
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = TrackingType(v)
	case []byte:
		*t = TrackingType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TrackingType", value)
	}
	return nil
}
