package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Bound is one end of a numeric range filter.
type Bound struct {
	Value float64
	Set   bool
}

func NewBound(v float64) Bound {
	return Bound{Value: v, Set: true}
}

// ParseBound parses a numeric input. Blank input clears the bound.
func ParseBound(raw string) (Bound, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Bound{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Bound{}, fmt.Errorf("parse number %q: %w", raw, err)
	}
	return NewBound(v), nil
}

func (b Bound) IsZero() bool { return !b.Set }

func (b Bound) String() string {
	if !b.Set {
		return ""
	}
	return strconv.FormatFloat(b.Value, 'f', -1, 64)
}

func (b Bound) MarshalJSON() ([]byte, error) {
	if !b.Set {
		return []byte("null"), nil
	}
	return json.Marshal(b.Value)
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Bound{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = NewBound(v)
	return nil
}

// Filter is the value stored for one column: Text for text and fuzzy
// columns, Min/Max for number columns.
type Filter struct {
	Text string `json:"text,omitempty"`
	Min  Bound  `json:"min,omitzero"`
	Max  Bound  `json:"max,omitzero"`
}

func TextFilter(text string) Filter {
	return Filter{Text: text}
}

func RangeFilter(lo, hi Bound) Filter {
	return Filter{Min: lo, Max: hi}
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Text) == "" && !f.Min.Set && !f.Max.Set
}

func (f Filter) String() string {
	if f.Min.Set || f.Max.Set {
		return f.Min.String() + ".." + f.Max.String()
	}
	return f.Text
}

// ParseFilter parses the command-line form of a filter. Number columns take
// "min..max" where either side may be empty, or a single value for an exact
// match.
func ParseFilter(kind Kind, raw string) (Filter, error) {
	if kind != KindNumber {
		return TextFilter(raw), nil
	}
	lo, hi, isRange := strings.Cut(raw, "..")
	if !isRange {
		b, err := ParseBound(raw)
		if err != nil {
			return Filter{}, err
		}
		return RangeFilter(b, b), nil
	}
	minBound, err := ParseBound(lo)
	if err != nil {
		return Filter{}, err
	}
	maxBound, err := ParseBound(hi)
	if err != nil {
		return Filter{}, err
	}
	return RangeFilter(minBound, maxBound), nil
}

func includesText(cell, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(cell), q)
}

func inRange(cell string, f Filter) bool {
	if !f.Min.Set && !f.Max.Set {
		return true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return false
	}
	if f.Min.Set && v < f.Min.Value {
		return false
	}
	if f.Max.Set && v > f.Max.Value {
		return false
	}
	return true
}

// fuzzyMatches returns the indexes of candidates matching query, best match
// first.
func fuzzyMatches(query string, candidates []string) []fuzzy.Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return fuzzy.Find(query, candidates)
}
