package monitor

// Monitor is a configured check. It is created from configuration and never
// mutated at runtime.
type Monitor struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Path0Day string `json:"-"`
}
