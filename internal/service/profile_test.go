package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-server/internal/domain"
	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/sse"
)

func TestProfile_AbsentIsNotAnError(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	profile, err := env.profiles.GetCallerProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, profile)

	profile, err = env.profiles.GetUserProfile(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestProfile_SaveAndRead(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.profiles.SaveCallerProfile(ctx, "alice", ProfileInput{Name: " Alice "})
	require.NoError(t, err)
	saved, err := env.profiles.SaveCallerProfile(ctx, "alice", ProfileInput{Name: "Alice L."})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", saved.Name)

	own, err := env.profiles.GetCallerProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, own)
	assert.Equal(t, "Alice L.", own.Name)

	// Any authenticated caller may read another identity's profile.
	other, err := env.profiles.GetUserProfile(ctx, "bob", "alice")
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, "alice", other.Identity)

	assert.Equal(t, sse.EventProfileUpdated, env.events.last().Type)
}

func TestProfile_Validation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.profiles.SaveCallerProfile(ctx, "alice", ProfileInput{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	long := make([]rune, domain.MaxProfileNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = env.profiles.SaveCallerProfile(ctx, "alice", ProfileInput{Name: string(long)})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.profiles.GetUserProfile(ctx, "", "alice")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestSettings_DefaultsThenSave(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	settings, err := env.settings.GetSettings(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.FontSizeNormal, settings.FontSize)
	assert.False(t, settings.HighContrast)

	_, err = env.settings.SaveSettings(ctx, "alice", SettingsInput{FontSize: domain.FontSizeXL, HighContrast: true})
	require.NoError(t, err)

	settings, err = env.settings.GetSettings(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.FontSizeXL, settings.FontSize)
	assert.True(t, settings.HighContrast)
	assert.False(t, settings.ReducedMotion)

	_, err = env.settings.SaveSettings(ctx, "alice", SettingsInput{FontSize: "huge"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	assert.Equal(t, sse.EventSettingsUpdated, env.events.last().Type)
}
