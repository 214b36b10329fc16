package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withNoColor(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
}

func TestFormatterWithColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	original := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = original }()

	result := Code.Sprint("tokn profile list")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	withNoColor(t)

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "tokn profile create", "`tokn profile create`"},
		{"Path has no decoration", Path, "profiles.json", "profiles.json"},
		{"Flag has no decoration", Flag, "--name", "--name"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "svc", "'svc'"},
		{"Muted adds parentheses", Muted, "not set", "(not set)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	withNoColor(t)

	result := Code.Sprintf("tokn profile %s", "export")
	want := "`tokn profile export`"
	if result != want {
		t.Errorf("Code.Sprintf() = %q, want %q", result, want)
	}
}

func TestNoColorFunction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}
	os.Unsetenv("NO_COLOR")

	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()
	if !noColor() {
		t.Error("noColor() should return true when color.NoColor is true")
	}
}

func TestStatus(t *testing.T) {
	withNoColor(t)

	tests := map[string]string{
		"pass":    "✓",
		"warning": "⚠",
		"error":   "✗",
		"other":   "(?)",
	}
	for status, want := range tests {
		if got := Status(status); got != want {
			t.Errorf("Status(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestField(t *testing.T) {
	withNoColor(t)

	if got := Field("tenant", 10, "contoso.com"); got != "  tenant:     contoso.com" {
		t.Errorf("Field() = %q", got)
	}
	if got := Field("redirect uri", 5, ""); got != "  redirect uri: (not set)" {
		t.Errorf("Field() with empty value = %q", got)
	}
}

func TestEnsureNewline(t *testing.T) {
	if EnsureNewline("a") != "a\n" || EnsureNewline("a\n") != "a\n" || EnsureNewline("") != "\n" {
		t.Error("EnsureNewline did not normalize line endings")
	}
}
