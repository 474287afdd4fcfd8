package cas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockValidatorRejectsWithoutTicketPrefix(t *testing.T) {
	v := NewMockValidator()

	for _, ticket := range []string{"", "XT-123", "st-123", "admin", "ticket-ST-1"} {
		assertion, err := v.Validate(context.Background(), ticket, "https://portal.uc.cl/login")
		assert.Nil(t, assertion, "ticket %q", ticket)
		assert.ErrorIs(t, err, ErrTicketRejected, "ticket %q", ticket)
	}
}

func TestMockValidatorAdminIdentity(t *testing.T) {
	v := NewMockValidator()

	for _, ticket := range []string{"ST-admin-123", "ST-xadminx", "ST-admin"} {
		assertion, err := v.Validate(context.Background(), ticket, "https://portal.uc.cl/login")
		require.NoError(t, err, "ticket %q", ticket)
		require.NotNil(t, assertion)
		assert.Equal(t, "karl.wennerstrom@uc.cl", assertion.Email)
	}
}

func TestMockValidatorClientIdentity(t *testing.T) {
	v := NewMockValidator()

	for _, ticket := range []string{"ST-xyz", "ST-123456", "ST-"} {
		assertion, err := v.Validate(context.Background(), ticket, "https://portal.uc.cl/login")
		require.NoError(t, err, "ticket %q", ticket)
		require.NotNil(t, assertion)
		assert.Equal(t, "cliente@uc.cl", assertion.Email)
	}
}
