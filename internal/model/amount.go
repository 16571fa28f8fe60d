package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value. The backend serializes decimals as JSON
// strings but accepts plain numbers on write, so Amount unmarshals both
// and always marshals as a number.
type Amount float64

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'f', 2, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = Amount(v)
	return nil
}

// String formats the amount with two decimal places.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}
