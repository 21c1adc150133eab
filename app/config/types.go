package config

// Source identifies one remote feed endpoint.
type Source struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled *bool  `yaml:"enabled"` // nil means enabled
}

// IsEnabled reports whether the source should be polled. Sources are
// enabled unless explicitly disabled.
func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// sourcesFile is the on-disk shape of the sources YAML file.
type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}
