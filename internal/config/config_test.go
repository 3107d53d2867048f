package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAccessLists(t *testing.T) {
	t.Setenv("ACCESS_ADMIN_EMAILS", " boss@example.com ,, Root@example.com")
	t.Setenv("ACCESS_MANAGER_EMAILS", "lead@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"boss@example.com", "Root@example.com"}, cfg.Access.AdminEmails)
	assert.Equal(t, []string{"lead@example.com"}, cfg.Access.ManagerEmails)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACCESS_ADMIN_EMAILS", "")
	t.Setenv("SESSION_DEDUCT_BREAKS", "")
	t.Setenv("SESSION_TIMEZONE", "")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Access.AdminEmails)
	assert.False(t, cfg.Session.DeductBreaks)
	assert.Equal(t, time.UTC, cfg.Session.Location())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("SESSION_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	require.Error(t, err)
}
