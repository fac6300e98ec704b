package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount accepts a price as a JSON number or a numeric string, since the
// property and booking views render prices as strings.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", s)
		}
		*a = Amount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// Float64Ptr returns nil for a missing amount.
func (a *Amount) Float64Ptr() *float64 {
	if a == nil {
		return nil
	}
	v := float64(*a)
	return &v
}
