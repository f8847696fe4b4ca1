package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config to be non-nil")
	}

	// Check defaults
	if cfg.Engine.Strategy != "strict" {
		t.Errorf("expected default strategy 'strict', got %s", cfg.Engine.Strategy)
	}

	if cfg.Engine.MaxDepth != 10 {
		t.Errorf("expected default max depth 10, got %d", cfg.Engine.MaxDepth)
	}

	if cfg.Engine.Concurrency != 4 {
		t.Errorf("expected default concurrency 4, got %d", cfg.Engine.Concurrency)
	}

	if cfg.TargetDir != "." {
		t.Errorf("expected default target dir '.', got %s", cfg.TargetDir)
	}

	if len(cfg.Registries) != 1 || cfg.Registries[0] != "registry.yaml" {
		t.Errorf("expected default registries [registry.yaml], got %v", cfg.Registries)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	// Create temporary directory with config file
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Write config file
	configContent := `
project_name: test-project
registries:
  - components/core.yaml
  - components/extras.yaml
target_dir: generated
engine:
  strategy: lenient
  max_depth: 6
  concurrency: 2
context:
  framework: nextjs
  platform: web
  region: norway
  overrides:
    tier: premium
`
	os.WriteFile("xaheen.yml", []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.ProjectName != "test-project" {
		t.Errorf("expected project name 'test-project', got %s", cfg.ProjectName)
	}

	if len(cfg.Registries) != 2 || cfg.Registries[0] != "components/core.yaml" {
		t.Errorf("expected configured registries, got %v", cfg.Registries)
	}

	if cfg.TargetDir != "generated" {
		t.Errorf("expected target dir 'generated', got %s", cfg.TargetDir)
	}

	if cfg.Engine.Strategy != "lenient" {
		t.Errorf("expected strategy 'lenient', got %s", cfg.Engine.Strategy)
	}

	if cfg.Engine.MaxDepth != 6 {
		t.Errorf("expected max depth 6, got %d", cfg.Engine.MaxDepth)
	}

	if cfg.Context.Framework != "nextjs" {
		t.Errorf("expected framework 'nextjs', got %s", cfg.Context.Framework)
	}

	if cfg.Context.Overrides["tier"] != "premium" {
		t.Errorf("expected tier override 'premium', got %s", cfg.Context.Overrides["tier"])
	}
}

func TestLoadRejectsBadStrategy(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	os.WriteFile("xaheen.yml", []byte("engine:\n  strategy: aggressive\n"), 0644)

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown strategy, got nil")
	}
}

func TestInProject(t *testing.T) {
	// Test in non-project directory
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if InProject() {
		t.Error("expected InProject to return false in non-project directory")
	}

	os.WriteFile("xaheen.yml", []byte(""), 0644)

	if !InProject() {
		t.Error("expected InProject to return true in project directory")
	}
}

func TestGetProjectRoot(t *testing.T) {
	// Create nested directory structure
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	// Create project root with xaheen.yml
	os.WriteFile(filepath.Join(tmpDir, "xaheen.yml"), []byte(""), 0644)

	// Create nested subdirectory
	subDir := filepath.Join(tmpDir, "src", "deep", "nested")
	os.MkdirAll(subDir, 0755)
	os.Chdir(subDir)

	root, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("expected to find project root, got error: %v", err)
	}

	// On macOS, /tmp is symlinked to /private/tmp, so resolve both paths
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedTmpDir, _ := filepath.EvalSymlinks(tmpDir)

	if resolvedRoot != resolvedTmpDir {
		t.Errorf("expected project root to be %s, got %s", resolvedTmpDir, resolvedRoot)
	}
}

func TestGetProjectRootNotInProject(t *testing.T) {
	// Create temporary directory with no project markers
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	_, err := GetProjectRoot()
	if err == nil {
		t.Error("expected error when not in a project, got nil")
	}
}
