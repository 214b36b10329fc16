package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/tokn/internal/audit"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
)

func seedAudit(t *testing.T) {
	t.Helper()
	newTestEnv(t, nil)
	audit.Log(audit.Entry{Timestamp: "2026-01-01T10:00:00.000000Z", User: "alice", Operation: "create", Profile: "svc"})
	audit.Log(audit.Entry{Timestamp: "2026-01-02T10:00:00.000000Z", User: "alice", Operation: "export", Profile: "SVC", IncludeSecrets: true})
	audit.Log(audit.Entry{Timestamp: "2026-01-03T10:00:00.000000Z", User: "bob", Operation: "create", Profile: "worker"})
	audit.Log(audit.Entry{Timestamp: "2026-01-04T10:00:00Z", User: "bob", Operation: "remove", Profile: "svc"})
}

func operations(entries []audit.Entry) []string {
	ops := make([]string, len(entries))
	for i, e := range entries {
		ops[i] = e.Operation + ":" + e.Profile
	}
	return ops
}

func TestLog_EmptyWhenNoLog(t *testing.T) {
	newTestEnv(t, nil)

	result, err := Log(context.Background(), LogOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Zero(t, result.TotalEntriesBeforeFilter)
}

func TestLog_Filters(t *testing.T) {
	tests := []struct {
		name string
		opts LogOptions
		want []string
	}{
		{"all", LogOptions{}, []string{"create:svc", "export:SVC", "create:worker", "remove:svc"}},
		{"profile ignores case", LogOptions{Profile: "Svc"}, []string{"create:svc", "export:SVC", "remove:svc"}},
		{"operations", LogOptions{Operations: []string{"Create", " remove "}}, []string{"create:svc", "create:worker", "remove:svc"}},
		{"since is inclusive", LogOptions{Since: "2026-01-03"}, []string{"create:worker", "remove:svc"}},
		{"until covers the whole day", LogOptions{Until: "2026-01-02"}, []string{"create:svc", "export:SVC"}},
		{"limit keeps most recent", LogOptions{Limit: 2}, []string{"create:worker", "remove:svc"}},
		{"reverse with limit", LogOptions{Reverse: true, Limit: 2}, []string{"remove:svc", "create:worker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seedAudit(t)

			result, err := Log(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 4, result.TotalEntriesBeforeFilter)
			assert.Equal(t, tt.want, operations(result.Entries))
		})
	}
}

func TestLog_InvalidDate(t *testing.T) {
	newTestEnv(t, nil)

	_, err := Log(context.Background(), LogOptions{Since: "01/02/2026"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)
}
