package market_common

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLenientFloat parses a JSON value that may hold a number, a decimal string
// or a string in scientific notation. The bool is false for null, missing or
// unparsable values.
func ParseLenientFloat(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		text = s
	}

	return ParseLenientString(text)
}

// leadingNumber matches the longest numeric prefix, so "12abc" reads as 12
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseLenientString parses the leading decimal or scientific-notation number of text.
// Trailing garbage is ignored; text without a leading number is unparsable.
func ParseLenientString(text string) (float64, bool) {
	text = leadingNumber.FindString(strings.TrimSpace(text))
	if text == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(strings.TrimPrefix(text, "+"))
	if err != nil {
		return 0, false
	}

	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// LenientFloatOrZero is ParseLenientFloat with 0 for anything unparsable
func LenientFloatOrZero(raw json.RawMessage) float64 {
	f, _ := ParseLenientFloat(raw)
	return f
}
