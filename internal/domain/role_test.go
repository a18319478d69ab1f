package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"user", RoleUser, false},
		{"guest", RoleGuest, false},
		{"ADMIN", "", true},
		{"root", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domainerrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_CanMutate(t *testing.T) {
	assert.True(t, RoleAdmin.CanMutate())
	assert.True(t, RoleUser.CanMutate())
	assert.False(t, RoleGuest.CanMutate())
	assert.False(t, Role("bogus").CanMutate())
}

func TestDefaultRoleIsUser(t *testing.T) {
	assert.Equal(t, RoleUser, DefaultRole)
	assert.False(t, DefaultRole.IsAdmin())
}
