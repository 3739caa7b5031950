package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := Run(context.Background(), nil, DefaultDir, "fix")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported goose command")
}

func TestRunRequiresDB(t *testing.T) {
	err := Run(context.Background(), nil, DefaultDir, "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is required")
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("20260301090400")
	require.NoError(t, err)
	assert.EqualValues(t, 20260301090400, v)

	for _, raw := range []string{"", "abc", "-3"} {
		_, err := parseVersion(raw)
		assert.Error(t, err, raw)
	}
}

func TestIsCommand(t *testing.T) {
	assert.True(t, IsCommand("up"))
	assert.True(t, IsCommand("reset"))
	assert.False(t, IsCommand("version"))
}
