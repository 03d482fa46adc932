package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestStore creates an in-memory sqlite store for testing.
// It is automatically closed when the test completes.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(":memory:")
	require.NoError(t, err, "failed to create test store")

	t.Cleanup(func() {
		s.Close()
	})

	return s
}
