package probe

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Options is the resolved (interpolated) option map of a single probe
// section, e.g. everything under "[check.xidletime]". It offers typed
// accessors so individual probe factories do not each reimplement parsing.
type Options map[string]string

// String returns the raw string value, or fallback if unset.
func (o Options) String(key, fallback string) string {
	if v, ok := o[key]; ok {
		return v
	}
	return fallback
}

// Required returns the raw string value or a ConfigurationError if unset.
func (o Options) Required(key string) (string, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return "", NewConfigurationError("missing required option %q", key)
	}
	return v, nil
}

// Duration parses key as a floating point number of seconds.
func (o Options) Duration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return fallback, nil
	}
	seconds, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, NewConfigurationError("option %q must be a number of seconds: %v", key, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// Float parses key as a float64.
func (o Options) Float(key string, fallback float64) (float64, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, NewConfigurationError("option %q must be a number: %v", key, err)
	}
	return f, nil
}

// Int parses key as an int.
func (o Options) Int(key string, fallback int) (int, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, NewConfigurationError("option %q must be an integer: %v", key, err)
	}
	return n, nil
}

// Bool parses key as a boolean, accepting the tokens strconv.ParseBool
// accepts, case-insensitively.
func (o Options) Bool(key string, fallback bool) (bool, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return false, NewConfigurationError("option %q must be a boolean: %v", key, err)
	}
	return b, nil
}

// Strings splits a comma-separated value into a trimmed slice.
func (o Options) Strings(key string) []string {
	v, ok := o[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// Redacted renders the option map for logging, masking anything named
// "password" or "secret".
func (o Options) Redacted() string {
	var b strings.Builder
	first := true
	for k, v := range o {
		if !first {
			b.WriteString(" ")
		}
		first = false
		if strings.Contains(strings.ToLower(k), "password") || strings.Contains(strings.ToLower(k), "secret") {
			v = "<redacted>"
		}
		fmt.Fprintf(&b, "%s=%s", k, v)
	}
	return b.String()
}
