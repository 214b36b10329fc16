// Package logger provides leveled console logging for tokn commands and the
// vault components they drive.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors from
// fatih/color.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows all messages including debug details
//
// Warnings and errors are always shown on stderr.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Prints with --debug, returns the error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d profiles", count)
//
// The zero value prints nothing below warning level, so vault components can
// hold a Logger without any setup in tests.
package logger
