package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.decorate(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.decorate(fmt.Sprintf(format, a...))
}

func (f Formatter) decorate(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands. Yellow, or `backticks` without colour.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file or directory paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --name.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats profile names and user-supplied values. Cyan, or
	// 'single quotes' without colour.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text. Gray, or (parentheses) without colour.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Status returns the mark for a check status name: pass, warning or error.
func Status(status string) string {
	switch status {
	case "pass":
		return Success.Sprint("✓")
	case "warning":
		return Warning.Sprint("⚠")
	case "error":
		return Error.Sprint("✗")
	default:
		return Muted.Sprint("?")
	}
}

// Field renders "key: value" with the key padded to width. Empty values are
// shown as a muted "not set".
func Field(key string, width int, value string) string {
	padding := ""
	if n := width - len(key); n > 0 {
		padding = strings.Repeat(" ", n)
	}
	if value == "" {
		value = Muted.Sprint("not set")
	}
	return fmt.Sprintf("  %s:%s %s", key, padding, value)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}
