package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the feed source list
type Loader struct {
	path string
}

// NewLoader creates a loader for the given sources YAML file
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the sources file and returns the enabled sources. An
// unreadable or invalid file is an error; disabled entries are skipped.
func (l *Loader) Load() ([]Source, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	sources := make([]Source, 0, len(file.Sources))
	for _, source := range file.Sources {
		if err := l.validate(source); err != nil {
			return nil, fmt.Errorf("invalid source %q: %w", source.Name, err)
		}

		if !source.IsEnabled() {
			slog.Debug("Source disabled, skipping", "source", source.Name)
			continue
		}

		if source.Name == "" {
			source.Name = hostOf(source.URL)
		}

		sources = append(sources, source)
	}

	slog.Info("Loaded sources", "path", l.path, "enabled", len(sources), "total", len(file.Sources))
	return sources, nil
}

func (l *Loader) validate(source Source) error {
	if source.URL == "" {
		return fmt.Errorf("url is required")
	}

	parsed, err := url.Parse(source.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme %q", parsed.Scheme)
	}

	return nil
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return parsed.Host
}
