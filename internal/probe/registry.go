package probe

import (
	"sort"
	"strings"
)

// ActivityFactory builds a configured Activity probe instance from its
// resolved options. name is the instance name taken from the config
// section header, e.g. "xidletime" from "[check.xidletime]".
type ActivityFactory func(name string, opts Options) (Activity, error)

// WakeupFactory builds a configured Wakeup probe instance.
type WakeupFactory func(name string, opts Options) (Wakeup, error)

type activityDescriptor struct {
	factory ActivityFactory
	params  []Param
}

type wakeupDescriptor struct {
	factory WakeupFactory
	params  []Param
}

var (
	activityFactories = map[string]activityDescriptor{}
	wakeupFactories   = map[string]wakeupDescriptor{}
)

// RegisterActivity associates a class identifier with a factory and its
// parameter schema. Built-in probe packages call this from an init()
// function; out-of-tree probes can do the same from their own package as
// long as it is imported (a dotted class name in configuration, e.g.
// "myorg/probes.Foo", simply needs the class registered under that exact
// string before the registry is built).
func RegisterActivity(class string, f ActivityFactory, params []Param) {
	activityFactories[class] = activityDescriptor{factory: f, params: params}
}

// RegisterWakeup associates a class identifier with a wakeup probe factory
// and its parameter schema.
func RegisterWakeup(class string, f WakeupFactory, params []Param) {
	wakeupFactories[class] = wakeupDescriptor{factory: f, params: params}
}

// KnownActivityClasses returns the registered activity class names, sorted,
// for use by the schema subcommand.
func KnownActivityClasses() []string {
	return sortedKeys(activityFactories)
}

// KnownWakeupClasses returns the registered wakeup class names, sorted.
func KnownWakeupClasses() []string {
	return sortedKeys(wakeupFactories)
}

// ActivitySchema returns class name -> declared parameters for every
// registered activity probe, for the schema subcommand.
func ActivitySchema() map[string][]Param {
	out := make(map[string][]Param, len(activityFactories))
	for class, d := range activityFactories {
		out[class] = d.params
	}
	return out
}

// WakeupSchema returns class name -> declared parameters for every
// registered wakeup probe, for the schema subcommand.
func WakeupSchema() map[string][]Param {
	out := make(map[string][]Param, len(wakeupFactories))
	for class, d := range wakeupFactories {
		out[class] = d.params
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Section is one parsed, interpolated, but not-yet-instantiated probe
// declaration: the instance name, its "enabled" flag, the class to
// instantiate (defaulting to the instance name per spec.md §6) and the
// resolved option map.
type Section struct {
	Name    string
	Enabled bool
	Class   string
	Options Options
}

// ClassName resolves which factory key to use: an explicit "class" option
// takes priority, otherwise the section's own short name is used.
func (s Section) ClassName() string {
	if s.Class != "" {
		return s.Class
	}
	return s.Name
}

// BuildActivities instantiates one Activity probe per enabled section, in
// the given order. An unknown class is a ConfigurationError. If
// errOnEmpty is set and no section is enabled, that is also a
// ConfigurationError (spec.md §4.1: an empty activity list fails startup).
func BuildActivities(sections []Section, errOnEmpty bool) ([]Activity, error) {
	var out []Activity
	for _, s := range sections {
		if !s.Enabled {
			continue
		}
		class := s.ClassName()
		descriptor, ok := activityFactories[class]
		if !ok {
			return nil, NewConfigurationError(
				"check %q: unknown activity class %q (known: %s)",
				s.Name, class, strings.Join(KnownActivityClasses(), ", "))
		}
		instance, err := descriptor.factory(s.Name, s.Options)
		if err != nil {
			return nil, err
		}
		out = append(out, instance)
	}
	if errOnEmpty && len(out) == 0 {
		return nil, NewConfigurationError("no activity checks enabled")
	}
	return out, nil
}

// BuildWakeups instantiates one Wakeup probe per enabled section. An empty
// result is not an error: spec.md §4.1 permits the daemon to run with
// suspension allowed but no scheduled wake-ups.
func BuildWakeups(sections []Section) ([]Wakeup, error) {
	var out []Wakeup
	for _, s := range sections {
		if !s.Enabled {
			continue
		}
		class := s.ClassName()
		descriptor, ok := wakeupFactories[class]
		if !ok {
			return nil, NewConfigurationError(
				"wakeup %q: unknown wakeup class %q (known: %s)",
				s.Name, class, strings.Join(KnownWakeupClasses(), ", "))
		}
		instance, err := descriptor.factory(s.Name, s.Options)
		if err != nil {
			return nil, err
		}
		out = append(out, instance)
	}
	return out, nil
}
