package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "autosuspend.conf")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_GeneralSection(t *testing.T) {
	path := writeConfig(t, `
[general]
interval = 30
idle_time = 300
min_sleep_time = 1200
wakeup_delta = 30
suspend_cmd = systemctl suspend
wakeup_cmd = rtcwake -m no -t {timestamp}
notify_cmd_wakeup = wall "suspending, will wake at {iso}"
notify_cmd_no_wakeup = wall "suspending indefinitely"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.General.Interval)
	assert.Equal(t, 300*time.Second, cfg.General.IdleTime)
	assert.Equal(t, 1200*time.Second, cfg.General.MinSleepTime)
	assert.Equal(t, 30*time.Second, cfg.General.WakeupDelta)
	assert.Equal(t, "systemctl suspend", cfg.General.SuspendCmd)
}

func TestLoad_MissingRequiredFieldsFails(t *testing.T) {
	path := writeConfig(t, `
[general]
interval = 30
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
[general]
interval = 10
suspend_cmd = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Second, cfg.General.IdleTime)
	assert.Equal(t, 1200*time.Second, cfg.General.MinSleepTime)
	assert.Equal(t, 30*time.Second, cfg.General.WakeupDelta)
}

func TestLoad_ChecksAndWakeupsSections(t *testing.T) {
	path := writeConfig(t, `
[general]
interval = 10
suspend_cmd = true

[check.load]
enabled = true
class = load
threshold = 1.5

[check.disabled-one]
enabled = false
class = load

[wakeup.cron]
enabled = true
schedule = 0 6 * * *
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Checks, 2)
	require.Len(t, cfg.Wakeups, 1)

	load := cfg.Checks[0]
	assert.Equal(t, "load", load.Name)
	assert.True(t, load.Enabled)
	assert.Equal(t, "load", load.Class)
	assert.Equal(t, "1.5", load.Options["threshold"])
	_, hasEnabled := load.Options["enabled"]
	assert.False(t, hasEnabled, "reserved 'enabled' key must not leak into probe Options")

	assert.Equal(t, "cron", cfg.Wakeups[0].Name)
	assert.Equal(t, "0 6 * * *", cfg.Wakeups[0].Options["schedule"])
}

func TestLoad_ChecksPreserveFileDeclarationOrder(t *testing.T) {
	// spec.md §4.2/§4.4/§5: activity probes are consulted in configured
	// order, so which probe short-circuits (and which reason is reported
	// with evaluate_all=false) must be deterministic across loads.
	path := writeConfig(t, `
[general]
interval = 10
suspend_cmd = true

[check.zeta]
enabled = true
class = load
threshold = 1

[check.alpha]
enabled = true
class = load
threshold = 1

[check.mu]
enabled = true
class = load
threshold = 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Checks, 3)
	var names []string
	for _, c := range cfg.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, names)
}

func TestLoad_ExtendedInterpolation(t *testing.T) {
	path := writeConfig(t, `
[general]
interval = 10
suspend_cmd = true

[check.http]
enabled = true
class = http
url = http://${general:host}:${general:port}/status
regex = ok

[general]
host = localhost
port = 8080
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Checks, 1)
	assert.Equal(t, "http://localhost:8080/status", cfg.Checks[0].Options["url"])
}

func TestLoad_InterpolationUnknownKeyFails(t *testing.T) {
	path := writeConfig(t, `
[general]
interval = 10
suspend_cmd = true

[check.http]
enabled = true
class = http
url = ${general:nonexistent}
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/path/to/autosuspend.conf")
	assert.Error(t, err)
}
