package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// TestAnalyzeCommandInterface tests the analyze command interface
func TestAnalyzeCommandInterface(t *testing.T) {
	analyzeCmd := NewAnalyzeCommand()
	if analyzeCmd == nil {
		t.Fatal("NewAnalyzeCommand should return a valid command instance")
	}

	cobraCmd := analyzeCmd.CreateCobraCommand()
	if cobraCmd == nil {
		t.Fatal("CreateCobraCommand should return a valid cobra command")
	}

	if cobraCmd.Use != "analyze [file]" {
		t.Errorf("Expected command use 'analyze [file]', got '%s'", cobraCmd.Use)
	}

	if cobraCmd.Short == "" {
		t.Error("Command should have a short description")
	}

	flags := cobraCmd.Flags()
	expectedFlags := []string{"json", "yaml", "csv", "output", "config", "target", "clean", "no-ai", "details"}
	for _, flagName := range expectedFlags {
		if flags.Lookup(flagName) == nil {
			t.Errorf("Expected flag '%s' to be defined", flagName)
		}
	}
}

// TestCleanCommandInterface tests the clean command interface
func TestCleanCommandInterface(t *testing.T) {
	cleanCmd := NewCleanCommand()
	if cleanCmd == nil {
		t.Fatal("NewCleanCommand should return a valid command instance")
	}

	cobraCmd := cleanCmd.CreateCobraCommand()
	if cobraCmd == nil {
		t.Fatal("CreateCobraCommand should return a valid cobra command")
	}

	if cobraCmd.Use != "clean [file]" {
		t.Errorf("Expected command use 'clean [file]', got '%s'", cobraCmd.Use)
	}

	flags := cobraCmd.Flags()
	expectedFlags := []string{"json", "yaml", "csv", "output", "skip-missing", "skip-duplicates", "skip-outliers", "standardize", "encode", "outlier-method", "outlier-action", "imputation", "scaling-method"}
	for _, flagName := range expectedFlags {
		if flags.Lookup(flagName) == nil {
			t.Errorf("Expected flag '%s' to be defined", flagName)
		}
	}
}

// TestVersionCommandInterface tests the version command interface
func TestVersionCommandInterface(t *testing.T) {
	versionCmd := NewVersionCommand()
	cobraCmd := versionCmd.CreateCobraCommand()

	if cobraCmd.Use != "version" {
		t.Errorf("Expected command use 'version', got '%s'", cobraCmd.Use)
	}

	var output bytes.Buffer
	cobraCmd.SetOut(&output)
	cobraCmd.SetErr(&output)

	if err := cobraCmd.Execute(); err != nil {
		t.Fatalf("Version command should not fail: %v", err)
	}

	if output.String() == "" {
		t.Error("Version command should produce output")
	}
}

// TestVersionCommandShortFlag tests version command --short flag
func TestVersionCommandShortFlag(t *testing.T) {
	versionCmd := NewVersionCommand()
	cobraCmd := versionCmd.CreateCobraCommand()

	var output bytes.Buffer
	cobraCmd.SetOut(&output)
	cobraCmd.SetErr(&output)
	cobraCmd.SetArgs([]string{"--short"})

	if err := cobraCmd.Execute(); err != nil {
		t.Fatalf("Version command with --short should not fail: %v", err)
	}

	if strings.TrimSpace(output.String()) == "" {
		t.Error("Short version should not be empty")
	}
}

// TestInitCommandInterface tests the init command interface
func TestInitCommandInterface(t *testing.T) {
	initCmd := NewInitCommand()
	cobraCmd := initCmd.CreateCobraCommand()

	if cobraCmd.Use != "init" {
		t.Errorf("Expected command use 'init', got '%s'", cobraCmd.Use)
	}

	flags := cobraCmd.Flags()
	for _, flagName := range []string{"force", "config"} {
		if flags.Lookup(flagName) == nil {
			t.Errorf("Expected flag '%s' to be defined", flagName)
		}
	}
}

// TestInitCommandExecution tests init command file creation
func TestInitCommandExecution(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ".datalysis.toml")

	initCmd := NewInitCommand()
	cobraCmd := initCmd.CreateCobraCommand()

	var output bytes.Buffer
	cobraCmd.SetOut(&output)
	cobraCmd.SetErr(&output)
	cobraCmd.SetArgs([]string{"--config", configFile})

	if err := cobraCmd.Execute(); err != nil {
		t.Fatalf("Init command should not fail: %v", err)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("Configuration file should be created: %v", err)
	}

	contentStr := string(content)
	for _, section := range []string{"[analysis]", "[cleaning]", "[ai]", "[output]"} {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file should contain %s section", section)
		}
	}
	for _, key := range []string{"outlier_method", "imputation_strategy", "api_key_env"} {
		if !strings.Contains(contentStr, key) {
			t.Errorf("Config file should contain %s setting", key)
		}
	}
}

// TestInitCommandFileExists tests init command behavior when file already exists
func TestInitCommandFileExists(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ".datalysis.toml")

	if err := os.WriteFile(configFile, []byte("existing config"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	initCmd := NewInitCommand()
	cobraCmd := initCmd.CreateCobraCommand()

	var output bytes.Buffer
	cobraCmd.SetOut(&output)
	cobraCmd.SetErr(&output)

	// Should fail without --force
	cobraCmd.SetArgs([]string{"--config", configFile})
	if err := cobraCmd.Execute(); err == nil {
		t.Error("Init command should fail when file exists without --force")
	}

	// Should succeed with --force
	output.Reset()
	cobraCmd.SetArgs([]string{"--config", configFile, "--force"})
	if err := cobraCmd.Execute(); err != nil {
		t.Errorf("Init command should succeed with --force: %v", err)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("Should be able to read config file: %v", err)
	}
	if strings.Contains(string(content), "existing config") {
		t.Error("File should be overwritten with --force")
	}
}

// TestAnalyzeCommandValidation tests analyze command input validation
func TestAnalyzeCommandValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{
			name:        "No file provided",
			args:        []string{},
			expectError: true,
		},
		{
			name:        "Non-existent file",
			args:        []string{"/nonexistent/data.csv", "--no-ai"},
			expectError: true,
		},
		{
			name:        "Unsupported extension",
			args:        []string{"/tmp/workbook.xlsx", "--no-ai"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzeCmd := NewAnalyzeCommand()
			cobraCmd := analyzeCmd.CreateCobraCommand()

			var output bytes.Buffer
			cobraCmd.SetOut(&output)
			cobraCmd.SetErr(&output)
			cobraCmd.SetArgs(tt.args)

			err := cobraCmd.Execute()
			if tt.expectError && err == nil {
				t.Error("Expected validation error but none occurred")
			} else if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

// TestAnalyzeCommandExecution runs a full analysis on a temp CSV
func TestAnalyzeCommandExecution(t *testing.T) {
	tempDir := t.TempDir()
	dataFile := filepath.Join(tempDir, "sales.csv")
	csv := "product,price,quantity\nwidget,9.99,5\ngadget,19.99,3\ndoohickey,4.99,10\n"
	if err := os.WriteFile(dataFile, []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	outFile := filepath.Join(tempDir, "report.json")

	analyzeCmd := NewAnalyzeCommand()
	cobraCmd := analyzeCmd.CreateCobraCommand()

	var output bytes.Buffer
	cobraCmd.SetOut(&output)
	cobraCmd.SetErr(&output)
	cobraCmd.SetArgs([]string{dataFile, "--json", "--no-ai", "-o", outFile})

	if err := cobraCmd.Execute(); err != nil {
		t.Fatalf("Analyze command should not fail: %v", err)
	}

	content, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Report file should be created: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Report should be valid JSON: %v", err)
	}
	if result["eda_type"] != "basic" {
		t.Errorf("Expected basic EDA type, got %v", result["eda_type"])
	}
}

// TestCleanCommandExecution runs the cleaning pipeline on a temp CSV
func TestCleanCommandExecution(t *testing.T) {
	tempDir := t.TempDir()
	dataFile := filepath.Join(tempDir, "raw.csv")
	csv := "name,value\nalice,1\nbob,2\nbob,2\n"
	if err := os.WriteFile(dataFile, []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	cleanCmd := NewCleanCommand()
	cobraCmd := cleanCmd.CreateCobraCommand()

	var output bytes.Buffer
	cobraCmd.SetOut(&output)
	cobraCmd.SetErr(&output)
	cobraCmd.SetArgs([]string{dataFile})

	if err := cobraCmd.Execute(); err != nil {
		t.Fatalf("Clean command should not fail: %v", err)
	}

	out := output.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected header plus two rows after deduplication, got %d lines: %s", len(lines), out)
	}
}

// TestCommandHelpOutput tests that help output is comprehensive
func TestCommandHelpOutput(t *testing.T) {
	commands := map[string]func() *bytes.Buffer{
		"analyze": func() *bytes.Buffer { return helpOutput(t, NewAnalyzeCommand().CreateCobraCommand()) },
		"clean":   func() *bytes.Buffer { return helpOutput(t, NewCleanCommand().CreateCobraCommand()) },
		"query":   func() *bytes.Buffer { return helpOutput(t, NewQueryCommand().CreateCobraCommand()) },
		"version": func() *bytes.Buffer { return helpOutput(t, NewVersionCommand().CreateCobraCommand()) },
		"init":    func() *bytes.Buffer { return helpOutput(t, NewInitCommand().CreateCobraCommand()) },
	}

	for name, run := range commands {
		t.Run(name, func(t *testing.T) {
			out := run().String()
			if !strings.Contains(out, "Usage:") {
				t.Error("Help should contain Usage section")
			}
			if !strings.Contains(out, "Flags:") {
				t.Error("Help should contain Flags section")
			}
		})
	}
}

func helpOutput(t *testing.T, cobraCmd *cobra.Command) *bytes.Buffer {
	t.Helper()
	var output bytes.Buffer
	cobraCmd.SetOut(&output)
	cobraCmd.SetArgs([]string{"--help"})
	if err := cobraCmd.Execute(); err != nil {
		t.Fatalf("Help command should not fail: %v", err)
	}
	return &output
}
