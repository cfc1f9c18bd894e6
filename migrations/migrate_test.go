// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	mock.ExpectExec(".*").WillReturnError(assert.AnError)

	err = Migrate(db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	assert.ErrorIs(t, Migrate(nil, DialectPostgres), ErrNilDB)
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestEmbeddedMigrations_EveryDialectHasFiles(t *testing.T) {
	for dialect, dir := range dialectDirs {
		files, err := fs.Glob(embedMigrations, dir+"/*.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, files, dialect)
	}
}
