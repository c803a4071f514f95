package filestore

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"facility-work-tracker/config"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	s := New(config.S3{Prefix: "/exports/"})
	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	key := s.Key("../work entries.xlsx", now)
	require.True(t, strings.HasPrefix(key, "exports/20240313/"), key)
	require.True(t, strings.HasSuffix(key, "-work_entries.xlsx"), key)

	key = New(config.S3{}).Key("a.xlsx", now)
	require.True(t, strings.HasPrefix(key, "20240313/"), key)
}

func TestSaveLocal(t *testing.T) {
	dir := t.TempDir()
	s := New(config.S3{LocalDir: dir, Prefix: "exports"})
	require.False(t, s.Remote())

	f, err := s.Save(context.Background(), "report.xlsx", "application/octet-stream", []byte("data"))
	require.NoError(t, err)
	require.Empty(t, f.URL)
	require.True(t, strings.HasPrefix(f.Path, dir))

	got, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	require.Equal(t, "data", string(got))
}
