// pkg/table/value.go
package table

import (
	"strconv"
	"strings"
)

// ValueKind identifies what a cell holds.
type ValueKind int

const (
	// KindMissing marks an absent value.
	KindMissing ValueKind = iota
	// KindNumeric holds a float64.
	KindNumeric
	// KindCategorical holds a string category.
	KindCategorical
)

// Value is a single cell in a record table: numeric, categorical, or missing.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

// Num returns a numeric value.
func Num(v float64) Value {
	return Value{kind: KindNumeric, num: v}
}

// Str returns a categorical value.
func Str(s string) Value {
	return Value{kind: KindCategorical, str: s}
}

// Missing returns the missing-value marker.
func Missing() Value {
	return Value{kind: KindMissing}
}

// Kind returns the value kind.
func (v Value) Kind() ValueKind { return v.kind }

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric content. For categorical cells it attempts a
// parse, so numeric data that arrived as text still reads as a number.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumeric:
		return v.num, true
	case KindCategorical:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// String returns a text rendering of the cell. Missing cells render empty.
func (v Value) String() string {
	switch v.kind {
	case KindNumeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindCategorical:
		return v.str
	default:
		return ""
	}
}

// ParseValue converts raw text into a Value. Empty strings and the common
// missing markers become the missing marker; anything that parses as a float
// becomes numeric; everything else is categorical.
func ParseValue(s string) Value {
	trimmed := strings.TrimSpace(s)
	if isMissingToken(trimmed) {
		return Missing()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Num(f)
	}
	return Str(trimmed)
}

func isMissingToken(s string) bool {
	switch s {
	case "", "NA", "N/A", "NaN", "nan", "null", "NULL":
		return true
	}
	return false
}
