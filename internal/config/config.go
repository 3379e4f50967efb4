// Package config parses the INI-style configuration file described in
// spec.md §6: a [general] section of engine options plus [check.<name>]
// and [wakeup.<name>] probe declarations, with "${section:key}" extended
// interpolation. Parsing uses github.com/go-ini/ini, matching the INI wire
// format the spec mandates.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"github.com/cbluth/autosuspend/internal/actions"
	"github.com/cbluth/autosuspend/internal/engine"
	"github.com/cbluth/autosuspend/internal/probe"
)

const (
	checkPrefix  = "check"
	wakeupPrefix = "wakeup"
)

// General holds the [general] section options (spec.md §6 table).
type General struct {
	Interval          time.Duration
	IdleTime          time.Duration
	MinSleepTime      time.Duration
	WakeupDelta       time.Duration
	SuspendCmd        string
	WakeupCmd         string
	NotifyCmdWakeup   string
	NotifyCmdNoWakeup string
}

// EngineConfig adapts General to the engine's Config shape.
func (g General) EngineConfig(evaluateAll bool) engine.Config {
	return engine.Config{
		IdleThreshold:      g.IdleTime,
		MinSleepDuration:   g.MinSleepTime,
		WakeupSafetyMargin: g.WakeupDelta,
		EvaluateAllProbes:  evaluateAll,
	}
}

// Templates adapts General to the actions package's command templates.
func (g General) Templates() actions.Templates {
	return actions.Templates{
		SuspendCmd:        g.SuspendCmd,
		WakeupCmd:         g.WakeupCmd,
		NotifyCmdWakeup:   g.NotifyCmdWakeup,
		NotifyCmdNoWakeup: g.NotifyCmdNoWakeup,
	}
}

// Config is the fully parsed and interpolated configuration file.
type Config struct {
	General General
	Checks  []probe.Section
	Wakeups []probe.Section
}

// Load reads and parses path, applying "${section:key}" interpolation to
// every value before building the General options and probe Sections.
func Load(path string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	ordered := make([]string, 0, len(file.Sections()))
	raw := make(map[string]map[string]string, len(file.Sections()))
	for _, sec := range file.Sections() {
		values := make(map[string]string, len(sec.Keys()))
		for _, key := range sec.Keys() {
			values[key.Name()] = key.Value()
		}
		raw[sec.Name()] = values
		ordered = append(ordered, sec.Name())
	}

	in := newInterpolator(raw)

	general, err := parseGeneral(raw, in)
	if err != nil {
		return nil, err
	}

	checks, err := parseSections(ordered, raw, in, checkPrefix)
	if err != nil {
		return nil, err
	}
	wakeups, err := parseSections(ordered, raw, in, wakeupPrefix)
	if err != nil {
		return nil, err
	}

	return &Config{General: general, Checks: checks, Wakeups: wakeups}, nil
}

func parseGeneral(raw map[string]map[string]string, in *interpolator) (General, error) {
	values, err := in.ResolveSection(raw["general"])
	if err != nil {
		return General{}, fmt.Errorf("general section: %w", err)
	}

	suspendCmd, ok := values["suspend_cmd"]
	if !ok || suspendCmd == "" {
		return General{}, fmt.Errorf("general section: suspend_cmd is required")
	}
	intervalRaw, ok := values["interval"]
	if !ok || intervalRaw == "" {
		return General{}, fmt.Errorf("general section: interval is required")
	}
	interval, err := parseSeconds(intervalRaw)
	if err != nil {
		return General{}, fmt.Errorf("general.interval: %w", err)
	}

	idleTime, err := parseSecondsDefault(values, "idle_time", 300)
	if err != nil {
		return General{}, err
	}
	minSleep, err := parseSecondsDefault(values, "min_sleep_time", 1200)
	if err != nil {
		return General{}, err
	}
	wakeupDelta, err := parseSecondsDefault(values, "wakeup_delta", 30)
	if err != nil {
		return General{}, err
	}

	return General{
		Interval:          interval,
		IdleTime:          idleTime,
		MinSleepTime:      minSleep,
		WakeupDelta:       wakeupDelta,
		SuspendCmd:        suspendCmd,
		WakeupCmd:         values["wakeup_cmd"],
		NotifyCmdWakeup:   values["notify_cmd_wakeup"],
		NotifyCmdNoWakeup: values["notify_cmd_no_wakeup"],
	}, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number of seconds: %w", err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func parseSecondsDefault(values map[string]string, key string, fallback float64) (time.Duration, error) {
	raw, ok := values[key]
	if !ok || raw == "" {
		return time.Duration(fallback * float64(time.Second)), nil
	}
	d, err := parseSeconds(raw)
	if err != nil {
		return 0, fmt.Errorf("general.%s: %w", key, err)
	}
	return d, nil
}

// parseSections extracts every "[prefix.name]" section into a probe.Section,
// in the file's declaration order (spec.md §4.2/§4.4/§5 rely on probes being
// consulted in configured order), resolving interpolation and stripping the
// reserved "enabled"/"class" keys out of the Options map handed to probe
// factories.
func parseSections(ordered []string, raw map[string]map[string]string, in *interpolator, prefix string) ([]probe.Section, error) {
	var out []probe.Section
	for _, name := range ordered {
		short, ok := strings.CutPrefix(name, prefix+".")
		if !ok {
			continue
		}
		resolved, err := in.ResolveSection(raw[name])
		if err != nil {
			return nil, fmt.Errorf("section [%s]: %w", name, err)
		}

		enabled, err := parseBool(resolved["enabled"], false)
		if err != nil {
			return nil, fmt.Errorf("section [%s].enabled: %w", name, err)
		}
		class := resolved["class"]

		opts := make(probe.Options, len(resolved))
		for k, v := range resolved {
			if k == "enabled" || k == "class" {
				continue
			}
			opts[k] = v
		}

		out = append(out, probe.Section{
			Name:    short,
			Enabled: enabled,
			Class:   class,
			Options: opts,
		})
	}
	return out, nil
}

func parseBool(raw string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseBool(strings.ToLower(raw))
}
