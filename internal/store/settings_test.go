package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderSettings(t *testing.T) {
	s := NewTestStore(t)
	const userID int64 = 42

	t.Run("default is off", func(t *testing.T) {
		_, ok, err := s.GetReminderSetting(userID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("toggle on", func(t *testing.T) {
		enabled, err := s.ToggleReminderSetting(userID, 10)
		require.NoError(t, err)
		assert.True(t, enabled)

		minutes, ok, err := s.GetReminderSetting(userID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 10, minutes)
	})

	t.Run("switching value replaces, not stacks", func(t *testing.T) {
		enabled, err := s.ToggleReminderSetting(userID, 5)
		require.NoError(t, err)
		assert.True(t, enabled)

		minutes, ok, err := s.GetReminderSetting(userID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 5, minutes)
	})

	t.Run("same value toggles off", func(t *testing.T) {
		enabled, err := s.ToggleReminderSetting(userID, 5)
		require.NoError(t, err)
		assert.False(t, enabled)

		_, ok, err := s.GetReminderSetting(userID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero minutes is a real setting", func(t *testing.T) {
		enabled, err := s.ToggleReminderSetting(userID, 0)
		require.NoError(t, err)
		assert.True(t, enabled)

		minutes, ok, err := s.GetReminderSetting(userID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0, minutes)
	})

	t.Run("invalid minutes rejected", func(t *testing.T) {
		_, err := s.ToggleReminderSetting(userID, 7)
		assert.Error(t, err)
	})
}
