package config

import (
	"encoding/json"
	"fmt"

	"github.com/cbluth/autosuspend/internal/probe"
)

// GeneralParameters describes the [general] section for the "schema"
// subcommand (spec.md §6).
var GeneralParameters = []probe.Param{
	{Name: "interval", Type: probe.TypeNumber, Description: "seconds between activity evaluations", Required: true},
	{Name: "idle_time", Type: probe.TypeNumber, Description: "seconds of continuous idleness required before suspending", Default: 300},
	{Name: "min_sleep_time", Type: probe.TypeNumber, Description: "minimum seconds a suspend must last to be worthwhile", Default: 1200},
	{Name: "wakeup_delta", Type: probe.TypeNumber, Description: "safety margin subtracted from a scheduled wake-up time", Default: 30},
	{Name: "suspend_cmd", Type: probe.TypeString, Description: "shell command that suspends the machine", Required: true},
	{Name: "wakeup_cmd", Type: probe.TypeString, Description: "shell command that schedules a wake-up, templated with {timestamp}/{iso}"},
	{Name: "notify_cmd_wakeup", Type: probe.TypeString, Description: "shell command run before a suspend that has a scheduled wake-up"},
	{Name: "notify_cmd_no_wakeup", Type: probe.TypeString, Description: "shell command run before a suspend with no scheduled wake-up"},
}

// Schema is the JSON document produced by the "schema" subcommand,
// describing every registered probe class's parameters. Field names match
// ConfigSchema.to_json in the original (general_parameters/activity_checks/
// wakeup_checks), the machine-readable contract spec.md §6 documents.
type Schema struct {
	General        []probe.Param            `json:"general_parameters"`
	ActivityChecks map[string][]probe.Param `json:"activity_checks"`
	WakeupChecks   map[string][]probe.Param `json:"wakeup_checks"`
}

// BuildSchema assembles a Schema from the general parameter table and the
// probe registry's self-declared parameter lists.
func BuildSchema() Schema {
	return Schema{
		General:        GeneralParameters,
		ActivityChecks: probe.ActivitySchema(),
		WakeupChecks:   probe.WakeupSchema(),
	}
}

// ToJSON renders the schema as indented JSON, the format spec.md §6
// mandates for the "schema" subcommand's stdout output.
func (s Schema) ToJSON() ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return out, nil
}
