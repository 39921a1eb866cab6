package recorder

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/reclog/internal/store"
)

// locations returns one store location per backend.
func locations(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		"sqlite": filepath.Join(t.TempDir(), "records.db"),
		"memory": store.SchemeMemory + t.Name(),
	}
}

func newTestRecorder(t *testing.T, location string) *Recorder {
	t.Helper()
	r := New(location, "")
	t.Cleanup(func() { r.Close() })
	return r
}

// pairs lists the store as "key=value" strings.
func pairs(t *testing.T, rs RecordStore) []string {
	t.Helper()
	recs, err := Collect(rs.List(context.Background()))
	require.NoError(t, err)
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Key + "=" + string(r.Value)
	}
	return out
}
