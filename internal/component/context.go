package component

// ResolutionContext captures the target environment for one resolution
// call. It is immutable after construction and lives only for the duration
// of the call.
type ResolutionContext struct {
	Framework   string            `json:"framework,omitempty" yaml:"framework,omitempty"`
	Platform    string            `json:"platform,omitempty" yaml:"platform,omitempty"`
	Context     string            `json:"context,omitempty" yaml:"context,omitempty"`
	Environment string            `json:"environment,omitempty" yaml:"environment,omitempty"`
	Region      string            `json:"region,omitempty" yaml:"region,omitempty"`
	Overrides   map[string]string `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Field resolves a named context field for predicate evaluation. Well-known
// names map to the typed fields; anything else is looked up in Overrides.
func (c ResolutionContext) Field(name string) (string, bool) {
	switch name {
	case "framework":
		return c.Framework, c.Framework != ""
	case "platform":
		return c.Platform, c.Platform != ""
	case "context":
		return c.Context, c.Context != ""
	case "environment":
		return c.Environment, c.Environment != ""
	case "region":
		return c.Region, c.Region != ""
	}
	v, ok := c.Overrides[name]
	return v, ok
}
