package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownOutputs = map[string]struct{}{
	"table": {}, "tsv": {}, "json": {}, "ndjson": {}, "markdown": {},
}

var knownColorModes = map[string]struct{}{
	"auto": {}, "always": {}, "never": {},
}

// FromEnv builds a configuration layer from environment variables. Only
// presentation settings can come from the environment; annotation and
// language definitions live in files.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	if raw := strings.TrimSpace(getenv("ANNOX_OUTPUT")); raw != "" {
		if _, ok := knownOutputs[strings.ToLower(raw)]; !ok {
			errs = append(errs, fmt.Errorf("invalid ANNOX_OUTPUT: %q", raw))
		} else {
			value := strings.ToLower(raw)
			cfg.UI.Output = &value
		}
	}
	if raw := strings.TrimSpace(getenv("ANNOX_COLOR")); raw != "" {
		if _, ok := knownColorModes[strings.ToLower(raw)]; !ok {
			errs = append(errs, fmt.Errorf("invalid ANNOX_COLOR: %q", raw))
		} else {
			value := strings.ToLower(raw)
			cfg.UI.Color = &value
		}
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
