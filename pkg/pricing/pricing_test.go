package pricing

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `default:
  input_per_million: 3.00
  output_per_million: 15.00
claude-opus-4.5:
  input_per_million: 5.00
  output_per_million: 25.00
claude-haiku-4.5:
  input_per_million: 0.80
  output_per_million: 4.00
`

func writePricingFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write pricing file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writePricingFile(t, sampleYAML)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if table.Len() != 3 {
		t.Errorf("Expected 3 entries, got %d", table.Len())
	}

	opus := table.Lookup("claude-opus-4.5")
	if opus.InputPerMillion != 5.00 || opus.OutputPerMillion != 25.00 {
		t.Errorf("Unexpected opus pricing: %+v", opus)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoad_MissingDefault(t *testing.T) {
	path := writePricingFile(t, "claude-opus-4.5:\n  input_per_million: 5.0\n  output_per_million: 25.0\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected error for table without default entry")
	}
}

func TestNewTable_NegativePrice(t *testing.T) {
	_, err := NewTable(map[string]Entry{
		DefaultModel: {InputPerMillion: -1, OutputPerMillion: 15},
	})
	if err == nil {
		t.Error("Expected error for negative price")
	}
}

func TestLookup_FallsBackToDefault(t *testing.T) {
	table, err := NewTable(map[string]Entry{
		DefaultModel: {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	got := table.Lookup("some-model-nobody-has-heard-of")
	if got.InputPerMillion != 3.00 || got.OutputPerMillion != 15.00 {
		t.Errorf("Expected default pricing for unknown model, got %+v", got)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	table, err := NewTable(map[string]Entry{
		DefaultModel: {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	snap := table.Snapshot()
	snap[DefaultModel] = Entry{InputPerMillion: 999, OutputPerMillion: 999}

	if table.Lookup(DefaultModel).InputPerMillion != 3.00 {
		t.Error("Mutating a snapshot changed the table")
	}
}

func TestReload(t *testing.T) {
	path := writePricingFile(t, sampleYAML)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	updated := "default:\n  input_per_million: 4.00\n  output_per_million: 20.00\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("Failed to update pricing file: %v", err)
	}

	if err := table.Reload(path); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if got := table.Lookup(DefaultModel).InputPerMillion; got != 4.00 {
		t.Errorf("Expected reloaded price 4.00, got %.2f", got)
	}
	if table.Len() != 1 {
		t.Errorf("Expected 1 entry after reload, got %d", table.Len())
	}
}

func TestReload_RejectsTableWithoutDefault(t *testing.T) {
	path := writePricingFile(t, sampleYAML)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bad := "claude-opus-4.5:\n  input_per_million: 5.0\n  output_per_million: 25.0\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("Failed to update pricing file: %v", err)
	}

	if err := table.Reload(path); err == nil {
		t.Fatal("Expected reload without default entry to fail")
	}

	// Previous table must remain intact.
	if table.Len() != 3 {
		t.Errorf("Expected previous table to survive failed reload, got %d entries", table.Len())
	}
}
