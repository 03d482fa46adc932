package store

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// GetGoogleToken retrieves the OAuth2 token for a user.
// Returns (nil, nil) when no token is stored.
func (s *Store) GetGoogleToken(userID int64) (*oauth2.Token, error) {
	var accessToken, refreshToken, tokenType string
	var expiry sql.NullTime

	err := s.QueryRow(`
		SELECT access_token, refresh_token, token_type, expiry
		FROM google_tokens WHERE user_id = ?
	`, userID).Scan(&accessToken, &refreshToken, &tokenType, &expiry)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get google token: %w", err)
	}

	tok := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenType,
	}
	if expiry.Valid {
		tok.Expiry = expiry.Time
	}
	return tok, nil
}

// SaveGoogleToken inserts or replaces the token for a user. The stored value
// is replaced whole, never patched, so a refresh swaps in the new credential
// atomically.
func (s *Store) SaveGoogleToken(userID int64, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("token is nil")
	}

	var expiry interface{}
	if !token.Expiry.IsZero() {
		expiry = token.Expiry.UTC()
	}

	_, err := s.Exec(`
		INSERT INTO google_tokens (user_id, access_token, refresh_token, token_type, expiry, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at
	`, userID, token.AccessToken, token.RefreshToken, token.TokenType, expiry, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save google token: %w", err)
	}
	return nil
}

// DeleteGoogleToken removes the stored token for a user.
// Returns true when a token existed.
func (s *Store) DeleteGoogleToken(userID int64) (bool, error) {
	result, err := s.Exec(`DELETE FROM google_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete google token: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return n > 0, nil
}

// ListUsersWithGoogleToken returns the IDs of all users holding a credential.
// The reminder scheduler scans this set every tick.
func (s *Store) ListUsersWithGoogleToken() ([]int64, error) {
	rows, err := s.Query(`SELECT user_id FROM google_tokens ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with google token: %w", err)
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}
