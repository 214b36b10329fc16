// Package audit records vault mutations in a local audit trail.
//
// Profile creation, edits, removal, secret changes, exports and imports are
// appended to a JSON Lines file in the tokn data directory:
//
//	<data>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - OS user and host
//   - Operation name
//   - Operation-specific details (profile, target, whether secrets moved)
//
// Entries never contain secret values.
//
// # Usage
//
//	entry := audit.LogWithUser("export")
//	entry.Profile = "svc"
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. An unwritable log never fails the
// operation being recorded.
//
// # Reading Logs
//
// ReadEntries parses the log for display. Malformed lines are skipped so a
// partial write does not hide the rest of the trail.
package audit
