// Package table holds the filter, sort, visibility and ordering state of a
// data table and derives its row model and header groups.
package table

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindFuzzy
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindFuzzy:
		return "fuzzy"
	default:
		return "text"
	}
}

func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", KindText.String():
		return KindText, nil
	case KindNumber.String():
		return KindNumber, nil
	case KindFuzzy.String():
		return KindFuzzy, nil
	default:
		return KindText, fmt.Errorf("unknown column kind %q", raw)
	}
}

type Column struct {
	ID     string
	Header string
	// Group is the label of the header spanning this column, if any.
	Group  string
	Kind   Kind
	Hidden bool
}

func (c Column) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

type Row struct {
	ID    string
	Cells map[string]string
}

func (r Row) Value(columnID string) string {
	return r.Cells[columnID]
}
