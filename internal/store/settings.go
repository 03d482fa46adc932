package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ReminderMinutesChoices are the accepted "minutes before start" values.
var ReminderMinutesChoices = []int{0, 5, 10, 15}

// ValidReminderMinutes reports whether m is an accepted reminder threshold.
func ValidReminderMinutes(m int) bool {
	for _, c := range ReminderMinutesChoices {
		if c == m {
			return true
		}
	}
	return false
}

// GetReminderSetting returns the user's reminder threshold in minutes.
// ok is false when the user has reminders off (no row).
func (s *Store) GetReminderSetting(userID int64) (minutes int, ok bool, err error) {
	err = s.QueryRow(`
		SELECT minutes_before FROM reminder_settings WHERE user_id = ?
	`, userID).Scan(&minutes)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get reminder setting: %w", err)
	}
	return minutes, true, nil
}

// ToggleReminderSetting flips the reminder preference: selecting the value
// already active turns reminders off, anything else becomes the single active
// threshold. Returns the resulting enabled state.
func (s *Store) ToggleReminderSetting(userID int64, minutes int) (enabled bool, err error) {
	if !ValidReminderMinutes(minutes) {
		return false, fmt.Errorf("invalid reminder minutes: %d", minutes)
	}

	current, ok, err := s.GetReminderSetting(userID)
	if err != nil {
		return false, err
	}

	if ok && current == minutes {
		if _, err := s.Exec(`DELETE FROM reminder_settings WHERE user_id = ?`, userID); err != nil {
			return false, fmt.Errorf("failed to clear reminder setting: %w", err)
		}
		return false, nil
	}

	_, err = s.Exec(`
		INSERT INTO reminder_settings (user_id, minutes_before, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			minutes_before = excluded.minutes_before,
			updated_at = excluded.updated_at
	`, userID, minutes, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to set reminder setting: %w", err)
	}
	return true, nil
}
