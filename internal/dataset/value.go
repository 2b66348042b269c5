package dataset

import (
	"strconv"
	"strings"
)

// Kind identifies the semantic type of a single cell.
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindText
)

// Value is one cell of a dataset: text, number, or missing.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Missing returns the missing value.
func Missing() Value {
	return Value{Kind: KindMissing}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{Kind: KindText, Str: s}
}

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Float coerces the value to a float64. Numeric values convert directly;
// text values are parsed leniently (thousands separators and a leading
// currency symbol are tolerated). Missing and unparseable values report
// ok=false.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindText:
		s := strings.TrimSpace(v.Str)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimPrefix(s, "$")
		s = strings.TrimPrefix(s, "€")
		s = strings.TrimPrefix(s, "£")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// String renders the value for display and export.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Str
	default:
		return ""
	}
}

// parseCell converts a raw cell string into a Value. Empty strings and
// common null markers become missing; strict numeric syntax (with optional
// thousands separators, as written by spreadsheet tools) becomes a number;
// everything else stays text.
func parseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "null", "NULL", "N/A", "n/a", "NaN":
		return Missing()
	}

	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return Number(f)
	}
	return Text(s)
}
