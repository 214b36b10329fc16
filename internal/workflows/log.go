package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/tokn/internal/audit"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
	"github.com/PolarWolf314/tokn/internal/profiles"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Profile keeps entries for this profile name, ignoring case.
	Profile string

	// Operations keeps entries whose operation is listed.
	Operations []string

	// Since and Until bound entries by day (YYYY-MM-DD, inclusive).
	Since string
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log. A missing log yields no entries.
//
// Returns ErrInvalidDateFormat if a date bound is not YYYY-MM-DD.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	since, err := parseDay(opts.Since, "--since")
	if err != nil {
		return nil, err
	}
	until, err := parseDay(opts.Until, "--until")
	if err != nil {
		return nil, err
	}
	if !until.IsZero() {
		until = until.Add(24*time.Hour - time.Nanosecond)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	ops := make(map[string]bool, len(opts.Operations))
	for _, op := range opts.Operations {
		if op = strings.ToLower(strings.TrimSpace(op)); op != "" {
			ops[op] = true
		}
	}

	var filtered []audit.Entry
	for _, e := range entries {
		if opts.Profile != "" && !profiles.SameName(e.Profile, opts.Profile) {
			continue
		}
		if len(ops) > 0 && !ops[strings.ToLower(e.Operation)] {
			continue
		}
		if !since.IsZero() || !until.IsZero() {
			t, err := e.Time()
			if err != nil {
				continue
			}
			if !since.IsZero() && t.Before(since) {
				continue
			}
			if !until.IsZero() && t.After(until) {
				continue
			}
		}
		filtered = append(filtered, e)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit keeps the most recent entries in either order.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func parseDay(value, flag string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat, flag)
	}
	return t, nil
}
