package intent

import (
	"encoding/json"
	"fmt"
	"os"
)

// Definition is one conversational category: the keywords that trigger
// it and the answer templates it may reply with. The JSON field names
// match the intents.json file format.
type Definition struct {
	Tag      string   `json:"tag"`
	Keywords []string `json:"keywords"`
	Answers  []string `json:"answer"`
}

// Table is the ordered, read-only intent set loaded once at startup.
// Classification scans definitions in declared order, so earlier
// entries win ties.
type Table struct {
	defs []Definition
}

// NewTable validates the definitions and freezes them into a Table.
func NewTable(defs []Definition) (*Table, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("intent table is empty")
	}
	for i, d := range defs {
		if d.Tag == "" {
			return nil, fmt.Errorf("intent %d: missing tag", i)
		}
		if len(d.Keywords) == 0 {
			return nil, fmt.Errorf("intent %q: no keywords", d.Tag)
		}
		if len(d.Answers) == 0 {
			return nil, fmt.Errorf("intent %q: no answers", d.Tag)
		}
	}
	return &Table{defs: append([]Definition(nil), defs...)}, nil
}

// All returns the definitions in declared order.
func (t *Table) All() []Definition {
	return t.defs
}

// Find looks up a definition by tag.
func (t *Table) Find(tag string) (Definition, bool) {
	for _, d := range t.defs {
		if d.Tag == tag {
			return d, true
		}
	}
	return Definition{}, false
}

// LoadFile reads a table from an intents.json-shaped file:
// {"intents":[{"tag","keywords","answer"},...]}.
func LoadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intents file: %w", err)
	}
	var doc struct {
		Intents []Definition `json:"intents"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse intents file %s: %w", path, err)
	}
	return NewTable(doc.Intents)
}
