package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB points the package at a fresh in-memory database.
func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitTest())
}
