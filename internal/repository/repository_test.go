package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		sqlxDB.Close()
	})

	return sqlxDB, mock
}

func strPtr(s string) *string { return &s }

// invalidUUID is what Postgres answers when a uuid column is compared with
// text that does not parse.
func invalidUUID(value string) error {
	return &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "` + value + `"`}
}
