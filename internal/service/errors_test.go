package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/glory-keeper/internal/adapter"
	"github.com/MKhiriev/glory-keeper/internal/store"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, ""},
		{fmt.Errorf("%w: bad uid", ErrValidation), KindValidation},
		{fmt.Errorf("get account: %w", store.ErrAccountNotFound), KindNotFound},
		{ErrAlreadyActive, KindAlreadyActive},
		{ErrAlreadyInactive, KindAlreadyInactive},
		{ErrAccountInError, KindAccountInError},
		{fmt.Errorf("%w: %w", adapter.ErrNetwork, adapter.ErrUnauthorized), KindNetwork},
		{ErrNoEligibleTargets, KindNoEligibleTargets},
		{errors.New("disk on fire"), KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), "%v", tt.err)
	}
}
