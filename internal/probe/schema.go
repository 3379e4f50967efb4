package probe

// ParamType enumerates the value kinds the schema subcommand can describe,
// per spec.md §6.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
)

// Param describes one configuration option accepted by a probe class. Only
// Name, Type and Description are mandatory; the rest are "unset" (and
// omitted by the schema command's JSON encoder) unless the probe sets them.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description"`
	Default     any       `json:"default,omitempty"`
	Required    bool      `json:"required,omitempty"`
	Minimum     *float64  `json:"minimum,omitempty"`
	Maximum     *float64  `json:"maximum,omitempty"`
	Pattern     string    `json:"pattern,omitempty"`
	EnumValues  []string  `json:"enum_values,omitempty"`
}

// Min returns a *float64 helper so callers can write probe.Min(0) inline.
func Min(v float64) *float64 { return &v }

// Max returns a *float64 helper so callers can write probe.Max(100) inline.
func Max(v float64) *float64 { return &v }

// enabledParam is the "enabled" option every check/wakeup section accepts;
// probe factories prepend it to their own parameter list when reporting
// their schema.
var enabledParam = Param{
	Name:        "enabled",
	Type:        TypeBoolean,
	Description: "Whether this check is instantiated at startup.",
	Default:     false,
}

// WithCommonParams prepends the options every probe section shares
// ("enabled", "class") to a probe-specific parameter list.
func WithCommonParams(params ...Param) []Param {
	classParam := Param{
		Name:        "class",
		Type:        TypeString,
		Description: "Overrides which registered class implements this section; defaults to the section's own name.",
	}
	return append([]Param{enabledParam, classParam}, params...)
}
