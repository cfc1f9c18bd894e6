package store

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/glory-keeper/internal/crypto"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/migrations"
	"github.com/MKhiriev/glory-keeper/models"
)

type fixedIDs string

func (f fixedIDs) Generate() string { return string(f) }

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestAccountRepo(t *testing.T, passphrase string) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	sealer, err := crypto.NewCredentialSealer(passphrase)
	require.NoError(t, err)

	db := newDB(sqlx.NewDb(mockDB, "sqlmock"), migrations.DialectPostgres, sq.Dollar, NewPostgresErrorClassifier(), logger.Nop())
	repo := &accountRepository{
		db:     db,
		sealer: sealer,
		ids:    fixedIDs("acc-1"),
		now:    func() time.Time { return fixedNow },
		logger: logger.Nop(),
	}
	return repo, mock
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns)
}

// sealedArg matches an INSERT argument produced by the AES sealer.
type sealedArg struct{}

func (sealedArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, "sealed:v1:")
}

func TestAccountRepository_Get(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id = \$1`).
		WithArgs("acc-1").
		WillReturnRows(accountRows().AddRow(
			"acc-1", "123456789", "token-0123456789", "clan-7", "guest", "active",
			int64(120), int64(20), fixedNow, fixedNow,
		))

	acc, err := repo.Get(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, "acc-1", acc.ID)
	assert.Equal(t, "123456789", acc.ExternalUID)
	assert.Equal(t, "token-0123456789", acc.Credential)
	assert.Equal(t, models.StatusActive, acc.Status)
	assert.Equal(t, models.AccountTypeGuest, acc.Type)
	assert.Equal(t, int64(120), acc.GloryTotal)
	require.NotNil(t, acc.LastActiveAt)
	assert.True(t, fixedNow.Equal(*acc.LastActiveAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(accountRows())

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRepository_List_OrderedByCreation(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectQuery(`SELECT (.+) FROM accounts ORDER BY created_at, id`).
		WillReturnRows(accountRows().
			AddRow("a", "111111111", "token-aaaaaaaaaa", "", "guest", "inactive", int64(0), int64(0), fixedNow, nil).
			AddRow("b", "222222222", "token-bbbbbbbbbb", "", "google", "error", int64(5), int64(1), fixedNow.Add(time.Second), nil))

	accs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accs, 2)
	assert.Equal(t, "a", accs[0].ID)
	assert.Nil(t, accs[0].LastActiveAt)
	assert.Equal(t, models.StatusError, accs[1].Status)
	assert.Equal(t, models.AccountTypeGoogle, accs[1].Type)
}

func TestAccountRepository_Create_SealsCredential(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "passphrase")

	mock.ExpectExec(`INSERT INTO accounts \(id,external_uid,credential,clan_ref,type,status,glory_total,glory_today,created_at,last_active_at\) VALUES`).
		WithArgs("acc-1", "123456789", sealedArg{}, "", "guest", "inactive", int64(0), int64(0), fixedNow, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	acc, err := repo.Create(context.Background(), models.NewAccount{
		ExternalUID: "123456789",
		Credential:  "token-0123456789",
	})
	require.NoError(t, err)

	assert.Equal(t, "acc-1", acc.ID)
	assert.Equal(t, "token-0123456789", acc.Credential)
	assert.Equal(t, models.StatusInactive, acc.Status)
	assert.Equal(t, models.AccountTypeGuest, acc.Type)
	assert.Equal(t, fixedNow, acc.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_PresetID(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs("remote-id", "123456789", "token-0123456789", "clan", "facebook", "inactive",
			int64(40), int64(0), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	acc, err := repo.Create(context.Background(), models.NewAccount{
		ID:          "remote-id",
		ExternalUID: "123456789",
		Credential:  "token-0123456789",
		ClanRef:     "clan",
		Type:        models.AccountTypeFacebook,
		GloryTotal:  40,
		CreatedAt:   fixedNow.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "remote-id", acc.ID)
	assert.Equal(t, fixedNow.Add(-time.Hour), acc.CreatedAt)
}

func TestAccountRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectExec(`INSERT INTO accounts`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Create(context.Background(), models.NewAccount{ExternalUID: "123456789", Credential: "token-0123456789"})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestAccountRepository_Create_RetriesTransientError(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectExec(`INSERT INTO accounts`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectExec(`INSERT INTO accounts`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(context.Background(), models.NewAccount{ExternalUID: "123456789", Credential: "token-0123456789"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_GivesUpAfterMaxAttempts(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	for range maxAttempts {
		mock.ExpectExec(`INSERT INTO accounts`).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	}

	_, err := repo.Create(context.Background(), models.NewAccount{ExternalUID: "123456789", Credential: "token-0123456789"})
	require.Error(t, err)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_NonRetryableIsNotRepeated(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectExec(`INSERT INTO accounts`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SyntaxError})

	_, err := repo.Create(context.Background(), models.NewAccount{ExternalUID: "123456789", Credential: "token-0123456789"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_IncrementsGlory(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts SET status = \$1, glory_today = glory_today \+ \$2, glory_total = glory_total \+ \$3 WHERE id = \$4`).
		WithArgs("active", int64(3), int64(3), "acc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id = \$1`).
		WithArgs("acc-1").
		WillReturnRows(accountRows().AddRow(
			"acc-1", "123456789", "token-0123456789", "", "guest", "active",
			int64(13), int64(3), fixedNow, fixedNow,
		))
	mock.ExpectCommit()

	acc, err := repo.Update(context.Background(), "acc-1", models.AccountUpdate{
		Status:        models.StatusPtr(models.StatusActive),
		AddGloryTotal: 3,
		AddGloryToday: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(13), acc.GloryTotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_ResetToday(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts SET glory_today = \$1 WHERE id = \$2`).
		WithArgs(int64(0), "acc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM accounts`).
		WillReturnRows(accountRows().AddRow(
			"acc-1", "123456789", "token-0123456789", "", "guest", "inactive",
			int64(13), int64(0), fixedNow, nil,
		))
	mock.ExpectCommit()

	acc, err := repo.Update(context.Background(), "acc-1", models.AccountUpdate{ResetGloryToday: true})
	require.NoError(t, err)
	assert.Zero(t, acc.GloryToday)
}

func TestAccountRepository_Update_NegativeDeltaIgnored(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	// only a read: the update carries nothing to write
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id = \$1`).
		WillReturnRows(accountRows().AddRow(
			"acc-1", "123456789", "token-0123456789", "", "guest", "inactive",
			int64(13), int64(0), fixedNow, nil,
		))

	acc, err := repo.Update(context.Background(), "acc-1", models.AccountUpdate{AddGloryTotal: -5})
	require.NoError(t, err)
	assert.Equal(t, int64(13), acc.GloryTotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), "missing", models.AccountUpdate{
		Status: models.StatusPtr(models.StatusInactive),
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRepository_Delete(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectExec(`DELETE FROM accounts WHERE id = \$1`).
		WithArgs("acc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM accounts WHERE id = \$1`).
		WithArgs("acc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "acc-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "acc-1"), ErrAccountNotFound)
}

func TestAccountRepository_Get_DriverError(t *testing.T) {
	repo, mock := newTestAccountRepo(t, "")

	mock.ExpectQuery(`SELECT`).WillReturnError(&pgconn.PgError{Code: pgerrcode.UndefinedTable})

	_, err := repo.Get(context.Background(), "acc-1")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
