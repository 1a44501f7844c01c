package state

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Lookup must treat any storage-level failure as a plain miss; the
// sqlmock harness simulates errors a real file-backed store would only
// produce under corruption or contention.
func TestStore_LookupStorageErrorIsMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT fingerprint, parser_version, targets FROM parse_cache`).
		WithArgs("/tmp/Makefile").
		WillReturnError(errors.New("disk I/O error"))

	s := &Store{db: db, parserVersion: "test-version"}
	_, ok := s.Lookup("/tmp/Makefile", "fp")
	assert.False(t, ok, "storage errors must never surface from Lookup")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PutStorageErrorIsReturned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO parse_cache`).
		WillReturnError(errors.New("database is locked"))

	s := &Store{db: db, parserVersion: "test-version"}
	err = s.Put("/tmp/Makefile", "fp", nil)
	assert.Error(t, err, "Put reports failures so callers can degrade to best-effort")

	assert.NoError(t, mock.ExpectationsWereMet())
}
