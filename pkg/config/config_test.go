package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bastiangx/chengyu/internal/utils"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	config, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), reloaded)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
max_limit = 10
strict = true

[dict]
path = "/srv/idioms.bin"
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, config.Server.MaxLimit)
	assert.True(t, config.Server.Strict)
	assert.Equal(t, 128, config.Server.MaxQueryLen)
	assert.Equal(t, "/srv/idioms.bin", config.Dict.Path)
	assert.Equal(t, DefaultConfig().CLI, config.CLI)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
max_limit = "lots"
max_query_len = 64

[cli]
default_limit = 5
no_color = true
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.MaxLimit, config.Server.MaxLimit)
	assert.Equal(t, 64, config.Server.MaxQueryLen)
	assert.Equal(t, 5, config.CLI.DefaultLimit)
	assert.True(t, config.CLI.NoColor)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nmax_limit ="), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHENGYU_DICT_PATH", "/tmp/other.json")
	t.Setenv("CHENGYU_SERVER_MAX_LIMIT", "7")
	t.Setenv("CHENGYU_CLI_NO_COLOR", "true")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nmax_limit = 10\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.json", config.Dict.Path)
	assert.Equal(t, 7, config.Server.MaxLimit)
	assert.True(t, config.CLI.NoColor)
	assert.Equal(t, 128, config.Server.MaxQueryLen)
}

func TestEnvOverridesInvalid(t *testing.T) {
	t.Setenv("CHENGYU_SERVER_MAX_LIMIT", "many")

	config := DefaultConfig()
	assert.Error(t, ApplyEnv(config))
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cli]\ndefault_limit = 3\n"), 0o644))

	config, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, config.CLI.DefaultLimit)
}

func TestGetActiveConfigPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "c.toml")
	assert.Equal(t, abs, GetActiveConfigPath(abs))
}

func TestGetConfigDirMatchesPathResolver(t *testing.T) {
	home := t.TempDir()
	xdg := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want, err := utils.UserConfigDir()
	require.NoError(t, err)
	got, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	path, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(want, "config.toml"), path)

	if runtime.GOOS == "linux" {
		assert.Equal(t, filepath.Join(xdg, utils.AppName), got)
	}
}
