package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/tabular/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	defaults := config.ColumnsConfig{DefaultFormat: "table"}
	cmd := newRootCmd(defaults, strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestColumns_SpaceAndTab(t *testing.T) {
	out, _, err := execute(t, "First Name,Zip\nAda,02134\n", "--format", "space")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "First Name   Zip\n" {
		t.Errorf("space output = %q", out)
	}

	out, _, err = execute(t, "\ufeffFirst Name;Zip\n", "--format", "tab", "--delimiter", ";")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "First Name\tZip\n" {
		t.Errorf("tab output = %q", out)
	}
}

func TestColumns_AppendDelete(t *testing.T) {
	out, _, err := execute(t, "a,b,c\n",
		"--format", "space",
		"--append", "B", "--append", "d",
		"--delete", "a",
	)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "b   c   d\n" {
		t.Errorf("output = %q, want %q", out, "b   c   d\n")
	}
}

func TestColumns_TableWithConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "columns.yaml")
	if err := os.WriteFile(configPath, []byte("Postal Code: text\nAmount:\n  type: numeric\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "Postal-Code,,Amount\n", "--config", configPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"postal_code", "text", "numeric", "Label", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestColumns_Mapping(t *testing.T) {
	dir := t.TempDir()
	mappingPath := filepath.Join(dir, "mapping.yaml")
	if err := os.WriteFile(mappingPath, []byte("Zip: text\nAge: integer\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "--mapping", mappingPath, "--format", "tab")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "Zip\tAge\n" {
		t.Errorf("output = %q", out)
	}
}

func TestColumns_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"empty input", "", nil, "no header line"},
		{"bad delimiter", "a,b\n", []string{"--delimiter", "::"}, "single character"},
		{"bad format", "a,b\n", []string{"--format", "xml"}, "unknown format"},
		{"missing config", "a,b\n", []string{"--config", "/does/not/exist.yaml"}, "exist.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatal("Execute() expected error")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to mention %q", stderr, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"no limit", "Customer Name", 0, "Customer Name"},
		{"fits", "Zip", 5, "Zip"},
		{"ascii", "Customer Name", 6, "Custo…"},
		{"wide runes", "日本語の見出し", 6, "日本…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.width); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}
