package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumericText is a number kept as the operator typed it. JSON accepts either a
// number or a string, so values written by older clients still decode.
type NumericText string

func (n *NumericText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumericText(num.String())
	return nil
}

// Float parses the text. Empty or non-numeric input yields 0, false.
func (n NumericText) Float() (float64, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Number returns the coerced value (0 when it does not parse).
func (n NumericText) Number() float64 {
	v, _ := n.Float()
	return v
}

func FormatNumber(v float64) NumericText {
	return NumericText(strconv.FormatFloat(v, 'f', -1, 64))
}
