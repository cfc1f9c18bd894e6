package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

// recordingSink collects events synchronously.
type recordingSink struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *recordingSink) Notify(e models.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) kinds() []models.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recordingSink) last() models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return models.Event{}
	}
	return r.events[len(r.events)-1]
}

func newMemoryStore() *store.MemoryAccountStore {
	return store.NewMemoryAccountStore(utils.NewUUIDGenerator())
}

func mustCreate(t *testing.T, st store.AccountStore, na models.NewAccount) models.Account {
	t.Helper()
	if na.Credential == "" {
		na.Credential = "credential-" + na.ExternalUID
	}
	acc, err := st.Create(context.Background(), na)
	require.NoError(t, err)
	return acc
}

func mustGet(t *testing.T, st store.AccountStore, id string) models.Account {
	t.Helper()
	acc, err := st.Get(context.Background(), id)
	require.NoError(t, err)
	return acc
}

func setStatus(t *testing.T, st store.AccountStore, id string, status models.AccountStatus) {
	t.Helper()
	_, err := st.Update(context.Background(), id, models.AccountUpdate{Status: models.StatusPtr(status)})
	require.NoError(t, err)
}

func blockUntil(t *testing.T, fc *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, n))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
