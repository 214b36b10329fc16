package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"
)

// ReadPassphrase prompts on stderr and reads a line from stdin without echo.
func ReadPassphrase(prompt string) ([]byte, error) {
	return readHidden(os.Stdin, "stdin", prompt, os.Stderr)
}

// ReadPassphraseFromTTY reads from the controlling terminal instead of
// stdin, for commands whose stdin carries an artifact.
func ReadPassphraseFromTTY(prompt string) ([]byte, error) {
	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CONIN$"
	}

	tty, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for passphrase input: %w", ttyPath, err)
	}
	defer tty.Close()

	return readHidden(tty, ttyPath, prompt, os.Stderr)
}

// IsTerminal reports whether stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// readHidden refuses non-terminal input before printing the prompt, so a
// piped command never leaves a dangling prompt on stderr.
func readHidden(f *os.File, name, prompt string, promptOut io.Writer) ([]byte, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: %s is not a terminal", name)
	}

	fmt.Fprint(promptOut, prompt)
	value, err := term.ReadPassword(fd)
	fmt.Fprintln(promptOut)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return value, nil
}
