// Package utils provides small OS helpers shared by the commands.
//
// # System Utilities
//
//   - CurrentIdentity: the OS user and machine name recorded in audit
//     entries, falling back to $USER or $USERNAME when the account
//     database has no entry
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data (artifacts, secrets)
//   - TrimLineEnding: strips one trailing newline from piped secrets
//
// # Terminal Utilities
//
//   - ReadPassphrase: hidden input from stdin
//   - ReadPassphraseFromTTY: hidden input when stdin carries other data
//   - IsTerminal: checks whether stdin is a terminal
package utils
