package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/mock"
	"github.com/MKhiriev/glory-keeper/models"
)

func TestAutoSaver_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := newMemoryStore()
	remote := mock.NewMockRemoteClient(ctrl)

	a := mustCreate(t, st, models.NewAccount{ExternalUID: "100000001"})
	b := mustCreate(t, st, models.NewAccount{ExternalUID: "100000002"})

	remote.EXPECT().PushSnapshot(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, accs []models.Account) error {
		require.Len(t, accs, 2)
		assert.Equal(t, a.ID, accs[0].ID)
		assert.Equal(t, b.ID, accs[1].ID)
		return nil
	})

	assert.NoError(t, NewAutoSaver(st, remote, logger.Nop()).Save(context.Background()))
}

func TestAutoSaver_Save_RemoteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteClient(ctrl)
	remote.EXPECT().PushSnapshot(gomock.Any(), gomock.Any()).Return(errors.Join(adapter.ErrNetwork, errors.New("timeout")))

	err := NewAutoSaver(newMemoryStore(), remote, logger.Nop()).Save(context.Background())
	assert.ErrorIs(t, err, adapter.ErrNetwork)
}
