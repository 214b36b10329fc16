// Package ui provides semantic text formatting for tokn output.
//
// Formatters colour text when the terminal supports it and fall back to
// plain decorations (backticks, quotes) when NO_COLOR is set or colour is
// unavailable:
//
//	ui.Code.Sprint("tokn profile create")    // commands
//	ui.Path.Sprint("~/.config/tokn")         // file paths
//	ui.Highlight.Sprint("svc")               // profile names and values
//	ui.Muted.Sprint("not set")               // secondary text
//
// Status and Field render the status marks and aligned key/value lines
// shared by the profile and doctor commands.
package ui
