package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/crypto"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/models"
)

// openSQLiteStorages opens a migrated SQLite file under t.TempDir. The test is
// skipped when the binary was built without cgo.
func openSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	sealer, err := crypto.NewCredentialSealer("test-passphrase")
	require.NoError(t, err)

	cfg := config.Storage{DB: config.DB{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "nested", "glory.db"),
	}}
	st, err := NewStorages(context.Background(), cfg, sealer, &seqIDs{}, logger.Nop())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	st := openSQLiteStorages(t)
	ctx := context.Background()

	created, err := st.Accounts.Create(ctx, models.NewAccount{
		ExternalUID: "123456789",
		Credential:  "token-0123456789",
		ClanRef:     "clan-1",
	})
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	updated, err := st.Accounts.Update(ctx, created.ID, models.AccountUpdate{
		Status:        models.StatusPtr(models.StatusActive),
		LastActiveAt:  &now,
		AddGloryTotal: 5,
		AddGloryToday: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, updated.Status)
	assert.Equal(t, int64(5), updated.GloryTotal)
	assert.Equal(t, "token-0123456789", updated.Credential)
	require.NotNil(t, updated.LastActiveAt)
	assert.True(t, now.Equal(*updated.LastActiveAt))

	_, err = st.Accounts.Update(ctx, created.ID, models.AccountUpdate{AddGloryTotal: 3})
	require.NoError(t, err)

	list, err := st.Accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(8), list[0].GloryTotal)

	_, err = st.Accounts.Create(ctx, models.NewAccount{ExternalUID: "123456789", Credential: "token-0123456789"})
	assert.ErrorIs(t, err, ErrAccountExists)

	require.NoError(t, st.Accounts.Delete(ctx, created.ID))
	_, err = st.Accounts.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestStorages_Ping(t *testing.T) {
	st := openSQLiteStorages(t)

	require.NoError(t, st.Ping(context.Background()))

	require.NoError(t, st.Close())
	assert.Error(t, st.Ping(context.Background()))
}

func TestNewStorages_Memory(t *testing.T) {
	st, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: config.DriverMemory}}, nil, &seqIDs{}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryAccountStore{}, st.Accounts)
	assert.NoError(t, st.Ping(context.Background()))
	assert.NoError(t, st.Close())
}

func TestNewStorages_UnknownDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: "mongo"}}, nil, &seqIDs{}, logger.Nop())
	assert.Error(t, err)
}
