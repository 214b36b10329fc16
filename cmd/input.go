package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tokn/internal/utils"
)

// readSecret returns a secret from piped stdin when fromStdin is set, or
// from a hidden terminal prompt otherwise.
func readSecret(prompt string, fromStdin bool) (string, error) {
	if fromStdin {
		data, err := utils.ReadStdin()
		if err != nil {
			return "", err
		}
		return utils.TrimLineEnding(string(data)), nil
	}

	if !utils.IsTerminal() {
		return "", fmt.Errorf("cannot prompt for a secret: stdin is not a terminal (hint: pipe the value with the stdin flag)")
	}
	value, err := utils.ReadPassphrase(prompt)
	if err != nil {
		return "", err
	}
	if len(value) == 0 {
		return "", fmt.Errorf("no value entered")
	}
	return string(value), nil
}

// readNewPassphrase prompts twice and requires both entries to match.
// useTTY reads from the terminal device when stdin carries other data.
func readNewPassphrase(useTTY bool) (string, error) {
	read := utils.ReadPassphrase
	if useTTY {
		read = utils.ReadPassphraseFromTTY
	}

	first, err := read("Export passphrase: ")
	if err != nil {
		return "", err
	}
	if len(first) == 0 {
		return "", fmt.Errorf("passphrase must not be empty")
	}
	second, err := read("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passphrases do not match")
	}
	return string(first), nil
}

// readPassphrase prompts once, from the terminal device when stdin is busy.
func readPassphrase(useTTY bool) (string, error) {
	read := utils.ReadPassphrase
	if useTTY {
		read = utils.ReadPassphraseFromTTY
	}
	value, err := read("Passphrase: ")
	if err != nil {
		return "", err
	}
	return string(value), nil
}
