package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// GroupEntry holds the statistics of one group.
type GroupEntry struct {
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Average    decimal.Decimal `json:"average"`
	Percentage decimal.Decimal `json:"percentage"`
	Members    []Transaction   `json:"-"`
}

// Grouping is the partition of a transaction set by one field.
// Keys keep the order in which groups were first seen.
type Grouping struct {
	By     string
	Groups map[string]*GroupEntry
	keys   []string
}

// NewGrouping returns an empty grouping by the given field.
func NewGrouping(by string) *Grouping {
	return &Grouping{By: by, Groups: make(map[string]*GroupEntry)}
}

// Add appends a transaction to the group for key, creating it on first use.
func (g *Grouping) Add(key string, t Transaction) *GroupEntry {
	entry, ok := g.Groups[key]
	if !ok {
		entry = &GroupEntry{Total: decimal.Zero}
		g.Groups[key] = entry
		g.keys = append(g.keys, key)
	}
	entry.Count++
	entry.Total = entry.Total.Add(t.Amount)
	entry.Members = append(entry.Members, t)
	return entry
}

// Keys returns the group keys in first-seen order.
func (g *Grouping) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Len returns the number of groups.
func (g *Grouping) Len() int {
	return len(g.keys)
}

// MarshalJSON writes {"by": ..., "groups": {...}}.
func (g *Grouping) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		By     string                 `json:"by"`
		Groups map[string]*GroupEntry `json:"groups"`
	}{By: g.By, Groups: g.Groups})
}
