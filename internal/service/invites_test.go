package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/glory-keeper/internal/config"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/mock"
	"github.com/MKhiriev/glory-keeper/internal/store"
	"github.com/MKhiriev/glory-keeper/models"
)

var testBatchConfig = config.Batch{
	MaxCount:       5,
	DefaultCount:   2,
	InterItemDelay: time.Millisecond,
}

func newInviteFixture(t *testing.T) (InviteService, *store.MemoryAccountStore, *mock.MockRemoteClient, *recordingSink) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := newMemoryStore()
	remote := mock.NewMockRemoteClient(ctrl)
	sink := &recordingSink{}
	clock := clockwork.NewRealClock()

	svc := NewInviteService(st, remote, NewBatchDispatcher(clock, staticIDs("b1"), logger.Nop()),
		sink, clock, testBatchConfig, logger.Nop())
	return svc, st, remote, sink
}

func TestDispatchInvites_Validation(t *testing.T) {
	svc, _, _, _ := newInviteFixture(t)

	tests := []models.InviteRequest{
		{ClanRef: "", Count: 1},
		{ClanRef: "clan", Count: 6},
		{ClanRef: "clan", Count: -1},
	}
	for _, req := range tests {
		_, err := svc.DispatchInvites(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, KindValidation, KindOf(err))
	}
}

func TestDispatchInvites_NoActiveAccounts(t *testing.T) {
	svc, st, _, sink := newInviteFixture(t)
	mustCreate(t, st, models.NewAccount{ExternalUID: "100000001"})

	_, err := svc.DispatchInvites(context.Background(), models.InviteRequest{ClanRef: "clan", Count: 1})
	assert.ErrorIs(t, err, ErrNoEligibleTargets)
	assert.Empty(t, sink.kinds())
}

func TestDispatchInvites_UsesActiveAccountsInOrder(t *testing.T) {
	svc, st, remote, sink := newInviteFixture(t)

	a := mustCreate(t, st, models.NewAccount{ExternalUID: "100000001"})
	mustCreate(t, st, models.NewAccount{ExternalUID: "100000002"})
	c := mustCreate(t, st, models.NewAccount{ExternalUID: "100000003"})
	setStatus(t, st, a.ID, models.StatusActive)
	setStatus(t, st, c.ID, models.StatusActive)

	gomock.InOrder(
		remote.EXPECT().SendInvite(gomock.Any(), gomock.Cond(func(acc models.Account) bool { return acc.ID == a.ID }), "clan").
			Return(models.InviteResult{Success: true}, nil),
		remote.EXPECT().SendInvite(gomock.Any(), gomock.Cond(func(acc models.Account) bool { return acc.ID == c.ID }), "clan").
			Return(models.InviteResult{Success: false, Message: "clan full"}, nil),
	)

	// Count 0 falls back to the configured default.
	res, err := svc.DispatchInvites(context.Background(), models.InviteRequest{ClanRef: " clan "})
	require.NoError(t, err)

	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, a.ID, res.Outcomes[0].AccountID)
	assert.Equal(t, "clan full", res.Outcomes[1].Message)
	assert.Equal(t, 1, res.Successes)

	assert.Equal(t, []models.EventKind{models.EventBatchCompleted}, sink.kinds())
	assert.Contains(t, sink.last().Message, "1 of 2")
}
