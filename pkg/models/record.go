package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Status describes the outcome of a single workflow iteration.
type Status string

const (
	StatusOK       Status = "OK"
	StatusAlert    Status = "ALERT"
	StatusAPIError Status = "API_ERROR"
)

// notAvailable is the sentinel rendered for metrics that could not be computed.
const notAvailable = "N/A"

// Float is a float64 that may be absent. An absent Float serializes to the
// string "N/A", matching the dashboard payload contract.
type Float struct {
	Value float64
	Valid bool
}

// FloatOf returns a present Float holding v.
func FloatOf(v float64) Float {
	return Float{Value: v, Valid: true}
}

// MarshalJSON renders the number, or "N/A" when absent.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return json.Marshal(notAvailable)
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON accepts either a JSON number or the "N/A" sentinel.
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(`"`+notAvailable+`"`)) || bytes.Equal(data, []byte("null")) {
		*f = Float{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FloatOf(v)
	return nil
}

// String renders the value for human-readable surfaces such as the dashboard.
func (f Float) String() string {
	if !f.Valid {
		return notAvailable
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// Record is one row of workflow history: the outcome of a single fetch of one
// endpoint, with the metrics derived from the numbers extracted from its
// response. Records are immutable once appended.
type Record struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Endpoint  string    `json:"api"`
	Depth     int       `json:"depth"`
	Value     Float     `json:"value"`
	Status    Status    `json:"status"`
	Max       Float     `json:"max_value"`
	Min       Float     `json:"min_value"`
	Avg       Float     `json:"avg_value"`
}
