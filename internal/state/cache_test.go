package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maki-build/maki/pkg/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore("test-version")
	require.NoError(t, s.Open(filepath.Join(t.TempDir(), "state.db")))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("hello world"))
	b := Fingerprint([]byte("hello world"))
	c := Fingerprint([]byte("different content"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64, "sha256 hex digest is 64 chars")
}

func TestStore_PutThenLookup(t *testing.T) {
	s := newTestStore(t)

	fp := Fingerprint([]byte("build:\n\techo hi\n"))
	targets := []task.Target{{Name: "build", File: "/tmp/Makefile", Line: 1}}

	require.NoError(t, s.Put("/tmp/Makefile", fp, targets))

	got, ok := s.Lookup("/tmp/Makefile", fp)
	require.True(t, ok, "expected cache hit")
	require.Len(t, got, 1)
	assert.Equal(t, "build", got[0].Name)
	assert.Equal(t, 1, got[0].Line)
}

func TestStore_LookupMissOnFingerprintMismatch(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("/tmp/Makefile", Fingerprint([]byte("old")), []task.Target{{Name: "build"}}))

	_, ok := s.Lookup("/tmp/Makefile", Fingerprint([]byte("new")))
	assert.False(t, ok, "mutated content must miss")
}

func TestStore_LookupMissOnParserVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	old := NewStore("v-old")
	require.NoError(t, old.Open(path))
	fp := Fingerprint([]byte("content"))
	require.NoError(t, old.Put("/tmp/Makefile", fp, []task.Target{{Name: "build"}}))
	require.NoError(t, old.Close())

	current := NewStore("v-new")
	require.NoError(t, current.Open(path))
	defer current.Close()

	_, ok := current.Lookup("/tmp/Makefile", fp)
	assert.False(t, ok, "entries from another parser version must miss")
}

func TestStore_LookupMissOnUnknownPath(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.Lookup("/nope/Makefile", Fingerprint([]byte("x")))
	assert.False(t, ok)
}

func TestStore_PutReplacesWholeEntry(t *testing.T) {
	s := newTestStore(t)

	first := Fingerprint([]byte("one"))
	second := Fingerprint([]byte("two"))
	require.NoError(t, s.Put("/tmp/Makefile", first, []task.Target{{Name: "old"}}))
	require.NoError(t, s.Put("/tmp/Makefile", second, []task.Target{{Name: "new"}, {Name: "extra"}}))

	_, ok := s.Lookup("/tmp/Makefile", first)
	assert.False(t, ok, "replaced entry must not answer for the old fingerprint")

	got, ok := s.Lookup("/tmp/Makefile", second)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Name)
}

func TestStore_CorruptEntryIsSilentMiss(t *testing.T) {
	s := newTestStore(t)

	fp := Fingerprint([]byte("content"))
	_, err := s.db.Exec(
		`INSERT INTO parse_cache (file_path, fingerprint, parser_version, targets) VALUES (?, ?, ?, ?)`,
		"/tmp/Makefile", fp, "test-version", "{not valid json",
	)
	require.NoError(t, err)

	_, ok := s.Lookup("/tmp/Makefile", fp)
	assert.False(t, ok, "corrupt stored entry must behave as a miss, not an error")
}

func TestStore_ClearAndStats(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("/a/Makefile", "fp1", []task.Target{{Name: "a"}, {Name: "b"}}))
	require.NoError(t, s.Put("/b/Makefile", "fp2", []task.Target{{Name: "c"}}))

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 3, stats.TotalTargets)

	require.NoError(t, s.Clear())
	stats, err = s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
}

func TestStore_Prune(t *testing.T) {
	s := newTestStore(t)

	dir := t.TempDir()
	existing := filepath.Join(dir, "Makefile")
	require.NoError(t, os.WriteFile(existing, []byte("build:\n"), 0o644))

	require.NoError(t, s.Put(existing, "fp1", []task.Target{{Name: "a"}}))
	require.NoError(t, s.Put(filepath.Join(dir, "gone"), "fp2", []task.Target{{Name: "b"}}))

	removed, err := s.Prune()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
}

func TestStore_Invalidate(t *testing.T) {
	s := newTestStore(t)

	fp := Fingerprint([]byte("content"))
	require.NoError(t, s.Put("/tmp/Makefile", fp, []task.Target{{Name: "a"}}))
	require.NoError(t, s.Invalidate("/tmp/Makefile"))

	_, ok := s.Lookup("/tmp/Makefile", fp)
	assert.False(t, ok)
}

func TestStore_ClosedStoreOperations(t *testing.T) {
	s := NewStore("test-version")

	_, ok := s.Lookup("/tmp/Makefile", "fp")
	assert.False(t, ok, "unopened store must behave as a miss")

	assert.Error(t, s.Put("/tmp/Makefile", "fp", nil))
	assert.Error(t, s.Clear())
}
