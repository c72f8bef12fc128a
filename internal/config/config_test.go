package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserConfigSeedsDefault(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Contains(t, cfg.Search.URL, "timesjobs.com")
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)

	// second call must return the existing file untouched
	cfg.Search.URL = "https://example.com/custom"
	require.NoError(t, SaveAtomic(path, cfg))

	again, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	reloaded, err := Load(again)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/custom", reloaded.Search.URL)
}

func TestOverlayEnv(t *testing.T) {
	t.Setenv("FROM_EMAIL", "sender@example.com")
	t.Setenv("TO_EMAIL", "rcpt@example.com")
	t.Setenv("PASSWORD", "hunter2")
	t.Setenv("JOBNOTIFY_SEARCH_URL", "https://example.com/search")

	cfg := Default()
	cfg.Mail.From = "file@example.com"
	OverlayEnv(&cfg)

	assert.Equal(t, "sender@example.com", cfg.Mail.From)
	assert.Equal(t, "rcpt@example.com", cfg.Mail.To)
	assert.Equal(t, "hunter2", cfg.Mail.AppPassword)
	assert.Equal(t, "https://example.com/search", cfg.Search.URL)
}

func TestOverlayEnvKeepsFileValues(t *testing.T) {
	for _, k := range []string{"FROM_EMAIL", "TO_EMAIL", "PASSWORD", "JOBNOTIFY_SEARCH_URL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := Default()
	cfg.Mail.From = "file@example.com"
	OverlayEnv(&cfg)

	assert.Equal(t, "file@example.com", cfg.Mail.From)
	assert.Contains(t, cfg.Search.URL, "timesjobs.com")
}

func TestNormalizeAndValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Mail.From = "sender@example.com"
		cfg.Mail.To = "rcpt@example.com"
		cfg.Mail.AppPassword = "hunter2"
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		_, v := NormalizeAndValidate(valid())
		assert.True(t, v.OK())
	})

	t.Run("trims fields", func(t *testing.T) {
		cfg := valid()
		cfg.Mail.From = "  sender@example.com  "
		out, v := NormalizeAndValidate(cfg)
		assert.True(t, v.OK())
		assert.Equal(t, "sender@example.com", out.Mail.From)
	})

	t.Run("missing addresses", func(t *testing.T) {
		cfg := valid()
		cfg.Mail.From = ""
		cfg.Mail.To = "not-an-address"
		_, v := NormalizeAndValidate(cfg)
		assert.False(t, v.OK())
		assert.Len(t, v.Errors, 2)
	})

	t.Run("bad search url", func(t *testing.T) {
		cfg := valid()
		cfg.Search.URL = "not a url"
		_, v := NormalizeAndValidate(cfg)
		assert.False(t, v.OK())
	})

	t.Run("bad smtp port", func(t *testing.T) {
		cfg := valid()
		cfg.SMTP.Port = 0
		_, v := NormalizeAndValidate(cfg)
		assert.False(t, v.OK())
	})

	t.Run("missing password is only a warning", func(t *testing.T) {
		cfg := valid()
		cfg.Mail.AppPassword = ""
		_, v := NormalizeAndValidate(cfg)
		assert.True(t, v.OK())
		assert.NotEmpty(t, v.Warnings)
	})
}
