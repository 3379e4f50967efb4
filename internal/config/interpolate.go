package config

import (
	"fmt"
	"regexp"
)

// refPattern matches the extended-interpolation syntax spec.md §6 requires:
// "${section:key}". Go's ini library has no equivalent of Python
// ConfigParser's ExtendedInterpolation, so this is implemented as a small
// post-processing pass over the raw, already-loaded values.
var refPattern = regexp.MustCompile(`\$\{([^:}]+):([^}]+)\}`)

const maxInterpolationDepth = 10

// interpolator resolves "${section:key}" references against a raw
// section->key->value table.
type interpolator struct {
	raw map[string]map[string]string
}

func newInterpolator(raw map[string]map[string]string) *interpolator {
	return &interpolator{raw: raw}
}

// Resolve expands every "${section:key}" reference in value, recursively,
// failing if resolution does not converge within maxInterpolationDepth
// (guards against reference cycles).
func (in *interpolator) Resolve(value string) (string, error) {
	return in.resolveDepth(value, 0)
}

func (in *interpolator) resolveDepth(value string, depth int) (string, error) {
	if !refPattern.MatchString(value) {
		return value, nil
	}
	if depth >= maxInterpolationDepth {
		return "", fmt.Errorf("interpolation of %q did not converge after %d levels", value, maxInterpolationDepth)
	}

	var resolveErr error
	expanded := refPattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := refPattern.FindStringSubmatch(match)
		section, key := groups[1], groups[2]
		sec, ok := in.raw[section]
		if !ok {
			resolveErr = fmt.Errorf("interpolation reference ${%s:%s}: unknown section %q", section, key, section)
			return match
		}
		val, ok := sec[key]
		if !ok {
			resolveErr = fmt.Errorf("interpolation reference ${%s:%s}: unknown key %q in section %q", section, key, key, section)
			return match
		}
		return val
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return in.resolveDepth(expanded, depth+1)
}

// ResolveSection resolves every value of a section map in place, returning
// a new map.
func (in *interpolator) ResolveSection(values map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for k, v := range values {
		resolved, err := in.Resolve(v)
		if err != nil {
			return nil, err
		}
		out[k] = resolved
	}
	return out, nil
}
