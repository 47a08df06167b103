package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUserFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadUserFixtures(t *testing.T) {
	t.Setenv("OPS_PHONE", "+15550199")
	path := writeUserFile(t, `
users:
  - name: Ana
    email: ana@example.com
    phone_number: "+15550100"
    subscriptions: [SPORTS, finance]
    channels: [EMAIL, PUSH_NOTIFICATION]
  - name: Ops
    phone_number: ${ENV:OPS_PHONE}
    subscriptions: [MOVIES]
    channels: [SMS]
`)

	users, err := LoadUserFixtures(path)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, UserFixture{
		Name:          "Ana",
		Email:         "ana@example.com",
		PhoneNumber:   "+15550100",
		Subscriptions: []string{"SPORTS", "finance"},
		Channels:      []string{"EMAIL", "PUSH_NOTIFICATION"},
	}, users[0])
	assert.Equal(t, "+15550199", users[1].PhoneNumber)
	assert.Empty(t, users[1].Email)
}

func TestLoadUserFixtures_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadUserFixtures(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadUserFixtures(writeUserFile(t, "users: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing user file")
	})

	t.Run("unset env var", func(t *testing.T) {
		path := writeUserFile(t, `
users:
  - name: Bo
    email: ${ENV:FANOUT_TEST_UNSET_EMAIL}
`)
		_, err := LoadUserFixtures(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FANOUT_TEST_UNSET_EMAIL")
	})
}

func TestInterpolateEnv(t *testing.T) {
	t.Setenv("FANOUT_TEST_A", "alpha")

	got, err := interpolateEnv("x-${ENV:FANOUT_TEST_A}-y")
	require.NoError(t, err)
	assert.Equal(t, "x-alpha-y", got)

	got, err = interpolateEnv("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	got, err = interpolateEnv("${ENV:unterminated")
	require.NoError(t, err)
	assert.Equal(t, "${ENV:unterminated", got)
}
