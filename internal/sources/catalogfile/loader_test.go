package catalogfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoadEmbedded(t *testing.T) {
	f, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(f.Categories) != 8 {
		t.Errorf("Load() returned %d categories, want 8", len(f.Categories))
	}
	if len(f.Remedies) != 12 {
		t.Errorf("Load() returned %d remedies, want 12", len(f.Remedies))
	}
	if f.Remedies[0].ID != "ginger-tea-cold" {
		t.Errorf("first remedy = %s, want ginger-tea-cold", f.Remedies[0].ID)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "catalog.yaml")

	yamlContent := `categories:
  - id: sleep
    name: Sleep Issues
    remedyCount: 6
remedies:
  - id: chamomile-sleep
    name: Chamomile Sleep Tea
    description: Calming tea
    ingredients: [Chamomile flowers (1 tbsp)]
    instructions: [Steep]
    preparationTime: 10 minutes
    reliefTime: 20-30 minutes
    category: sleep
    difficulty: Easy
    effectiveness: 4
`
	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	f, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Remedies) != 1 || f.Remedies[0].ID != "chamomile-sleep" {
		t.Errorf("Load() remedies = %+v", f.Remedies)
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	if err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("remedies:\n  - id: x\n    flavour: mint\n"))
	if err == nil {
		t.Error("Parse() should reject unknown fields")
	}
}
