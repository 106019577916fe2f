package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/store"
	"github.com/MrSnakeDoc/healthvibe/internal/store/memory"
	"github.com/MrSnakeDoc/healthvibe/internal/store/storetest"
)

func TestGetDefaults(t *testing.T) {
	s := NewStore(memory.New(), logger.NewNop())
	assert.Equal(t, domain.DefaultSettings(), s.Get(context.Background(), "c1"))
}

func TestToggleDataSharing(t *testing.T) {
	ctx := context.Background()
	s := NewStore(memory.New(), logger.NewNop())

	key, err := domain.ParseSettingKey("privacy.dataSharing")
	require.NoError(t, err)

	got, err := s.Toggle(ctx, "c1", key)
	require.NoError(t, err)
	assert.True(t, got.Privacy.DataSharing)
	assert.True(t, s.Get(ctx, "c1").Privacy.DataSharing)
	assert.False(t, s.Get(ctx, "c2").Privacy.DataSharing)

	_, err = s.Toggle(ctx, "c1", domain.SettingKey(0))
	assert.Error(t, err)
}

func TestSaveReplacesRecord(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := NewStore(kv, logger.NewNop())

	v := domain.DefaultSettings()
	v.AppPreferences.DarkMode = false
	v.Notifications.NewRemedies = true
	s.Save(ctx, "c1", v)

	assert.Equal(t, v, s.Get(ctx, "c1"))

	var raw map[string]any
	ok, err := store.GetJSON(ctx, kv, "c1", store.KeySettings, &raw)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, raw, "appPreferences")
}

func TestNilStoreFallsBackToDefaults(t *testing.T) {
	s := NewStore(nil, logger.NewNop())
	got, err := s.Toggle(context.Background(), "c1", domain.SettingDarkMode)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got, "nothing stored, nothing toggled")
	assert.Equal(t, domain.DefaultSettings(), s.Get(context.Background(), "c1"))
}

func TestToggleLeavesRecordWhenReadFails(t *testing.T) {
	ctx := context.Background()
	kv := storetest.NewFlaky(memory.New())
	s := NewStore(kv, logger.NewNop())

	v := domain.DefaultSettings()
	v.Notifications.NewRemedies = true
	v.Privacy.DataSharing = true
	s.Save(ctx, "c1", v)
	writes := kv.Sets()

	kv.FailGets(1)
	got, err := s.Toggle(ctx, "c1", domain.SettingDarkMode)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
	assert.Equal(t, writes, kv.Sets(), "no write after a failed read")
	assert.Equal(t, v, s.Get(ctx, "c1"))
}

func TestToggleReportsStoredRecordWhenWriteFails(t *testing.T) {
	ctx := context.Background()
	kv := storetest.NewFlaky(memory.New())
	s := NewStore(kv, logger.NewNop())

	kv.FailSets(1)
	got, err := s.Toggle(ctx, "c1", domain.SettingDarkMode)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
	assert.True(t, s.Get(ctx, "c1").AppPreferences.DarkMode)
}
