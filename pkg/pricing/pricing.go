package pricing

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultModel is the mandatory fallback entry key.
const DefaultModel = "default"

// Entry contains per-million-token prices for a single model, in USD.
type Entry struct {
	// InputPerMillion is the price per one million input tokens.
	InputPerMillion float64 `yaml:"input_per_million" json:"input_per_million"`

	// OutputPerMillion is the price per one million output tokens.
	OutputPerMillion float64 `yaml:"output_per_million" json:"output_per_million"`
}

// Table is the read-mostly pricing table keyed by model name.
//
// Table is safe for concurrent use; Reload swaps the entry map atomically
// under the write lock so readers always see a complete table.
type Table struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewTable creates a Table from an entry map.
// The map must contain a DefaultModel entry.
func NewTable(entries map[string]Entry) (*Table, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	copied := make(map[string]Entry, len(entries))
	for name, e := range entries {
		copied[name] = e
	}

	return &Table{entries: copied}, nil
}

// Load reads a pricing table from a YAML file.
//
// The file maps model names to entries:
//
//	default:
//	  input_per_million: 3.00
//	  output_per_million: 15.00
//	claude-opus-4.5:
//	  input_per_million: 5.00
//	  output_per_million: 25.00
func Load(path string) (*Table, error) {
	entries, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return NewTable(entries)
}

// Lookup returns the pricing entry for model, falling back to the
// DefaultModel entry when the model is unknown. Lookup never fails.
func (t *Table) Lookup(model string) Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if e, ok := t.entries[model]; ok {
		return e
	}
	return t.entries[DefaultModel]
}

// Snapshot returns a copy of all entries in the table.
func (t *Table) Snapshot() map[string]Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]Entry, len(t.entries))
	for name, e := range t.entries {
		out[name] = e
	}
	return out
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Reload replaces the table contents from the file at path.
// On any error the existing table is left untouched.
func (t *Table) Reload(path string) error {
	entries, err := readFile(path)
	if err != nil {
		return err
	}
	if err := validateEntries(entries); err != nil {
		return err
	}

	t.mu.Lock()
	t.entries = entries
	t.mu.Unlock()

	return nil
}

func readFile(path string) (map[string]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file %q: %w", path, err)
	}

	var entries map[string]Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse pricing file %q: %w", path, err)
	}

	return entries, nil
}

func validateEntries(entries map[string]Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("pricing table is empty")
	}
	if _, ok := entries[DefaultModel]; !ok {
		return fmt.Errorf("pricing table is missing the mandatory %q entry", DefaultModel)
	}
	for name, e := range entries {
		if e.InputPerMillion < 0 || e.OutputPerMillion < 0 {
			return fmt.Errorf("pricing entry %q has negative prices", name)
		}
	}
	return nil
}
