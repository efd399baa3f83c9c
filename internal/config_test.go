package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("JWT_SECRET", "0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	setRequired(t)

	config, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	req.NoError(err)
	req.Equal(8080, config.Port)
	req.Equal(3*time.Second, config.TypingTimeout)
	req.Equal(24*time.Hour, config.StatusTTL)
	req.Equal(256, config.ConnectionBufferSize)
	req.Nil(config.LimitMessages)
	req.True(config.EnableModeration)
	req.Equal("*", config.CharReplacement)
}

func TestLoad_Environment_Overrides(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("TYPING_TIMEOUT", "500ms")
	t.Setenv("LIMIT_MESSAGES", "20")
	t.Setenv("ENABLE_MODERATION", "false")

	config, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	req.NoError(err)
	req.Equal(9000, config.Port)
	req.Equal(500*time.Millisecond, config.TypingTimeout)
	req.NotNil(config.LimitMessages)
	req.Equal(20, *config.LimitMessages)
	req.False(config.EnableModeration)
}

func TestLoad_Dotenv_File(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	file := filepath.Join(t.TempDir(), "test.env")
	req.NoError(os.WriteFile(file, []byte("STATUS_TTL=2h\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("STATUS_TTL") })

	config, err := Load(file)

	req.NoError(err)
	req.Equal(2*time.Hour, config.StatusTTL)
}

func TestLoad_Rejects_Invalid_Config(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"short secret", "JWT_SECRET", "short"},
		{"port out of range", "PORT", "70000"},
		{"empty outbox", "CONNECTION_BUFFER_SIZE", "0"},
		{"replacement is not one character", "CHARACTER_REPLACEMENT", "**"},
		{"not a duration", "TYPING_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
		})
	}
}

func TestLoad_Requires_Secret(t *testing.T) {
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)
	r, err := CharacterRune("#")
	req.NoError(err)
	req.Equal('#', r)
	_, err = CharacterRune("")
	req.Error(err)
}
