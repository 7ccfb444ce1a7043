package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var annotationKeyMap = map[string]string{
	"name":        "name",
	"pattern":     "pattern",
	"regex":       "pattern",
	"markdown":    "markdown",
	"is_markdown": "markdown",
}

var languageKeyMap = map[string]string{
	"ids":            "ids",
	"language_ids":   "ids",
	"languages":      "ids",
	"line":           "line",
	"line_comments":  "line",
	"block":          "block",
	"block_comments": "block",
	"skip":           "skip",
	"skipped_blocks": "skip",
}

var uiKeyMap = map[string]string{
	"output": "output",
	"color":  "color",
}

// Load reads one configuration layer from path. The format follows the
// file extension: .yaml/.yml, .toml, .json.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	for key, value := range raw {
		switch normalizeKey(key) {
		case "annotations", "markers":
			list, err := decodeAnnotations(value)
			if err != nil {
				return cfg, fmt.Errorf("annotations: %w", err)
			}
			cfg.Annotations = &list
		case "languages":
			list, err := decodeLanguages(value)
			if err != nil {
				return cfg, fmt.Errorf("languages: %w", err)
			}
			cfg.Languages = &list
		case "ui":
			if err := decodeUI(value, &cfg.UI); err != nil {
				return cfg, fmt.Errorf("ui: %w", err)
			}
		default:
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}
	return cfg, nil
}

func decodeAnnotations(value any) ([]Annotation, error) {
	entries, err := expectList(value, "annotations")
	if err != nil {
		return nil, err
	}
	out := make([]Annotation, 0, len(entries))
	for i, entry := range entries {
		sub, err := toStringKeyMap(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		var a Annotation
		for key, v := range sub {
			canonical, known := annotationKeyMap[normalizeKey(key)]
			if !known {
				// styling fields are opaque and passed through unchanged
				if a.Style == nil {
					a.Style = make(map[string]any)
				}
				a.Style[normalizeKey(key)] = v
				continue
			}
			switch canonical {
			case "name":
				str, err := expectString(v, "name")
				if err != nil {
					return nil, fmt.Errorf("entry %d: %w", i, err)
				}
				a.Name = strings.TrimSpace(str)
			case "pattern":
				str, err := expectString(v, "pattern")
				if err != nil {
					return nil, fmt.Errorf("entry %d: %w", i, err)
				}
				a.Pattern = str
			case "markdown":
				b, err := expectBool(v, "markdown")
				if err != nil {
					return nil, fmt.Errorf("entry %d: %w", i, err)
				}
				a.Markdown = b
			}
		}
		if a.Name == "" {
			return nil, fmt.Errorf("entry %d: name is required", i)
		}
		if a.Pattern == "" {
			return nil, fmt.Errorf("entry %d (%s): pattern is required", i, a.Name)
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeLanguages(value any) ([]Language, error) {
	entries, err := expectList(value, "languages")
	if err != nil {
		return nil, err
	}
	out := make([]Language, 0, len(entries))
	for i, entry := range entries {
		sub, err := toStringKeyMap(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		var l Language
		for key, v := range sub {
			canonical, known := languageKeyMap[normalizeKey(key)]
			if !known {
				return nil, fmt.Errorf("entry %d: unknown key: %s", i, key)
			}
			list, err := expectStringList(v, canonical)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			switch canonical {
			case "ids":
				l.IDs = list
			case "line":
				l.Line = list
			case "block":
				l.Block = list
			case "skip":
				l.Skip = list
			}
		}
		if len(l.IDs) == 0 {
			return nil, fmt.Errorf("entry %d: ids is required", i)
		}
		out = append(out, l)
	}
	return out, nil
}

func decodeUI(value any, dst *UIConfig) error {
	sub, err := toStringKeyMap(value)
	if err != nil {
		return err
	}
	for key, v := range sub {
		canonical, known := uiKeyMap[normalizeKey(key)]
		if !known {
			return fmt.Errorf("unknown key: %s", key)
		}
		str, err := expectString(v, canonical)
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(str)
		switch canonical {
		case "output":
			dst.Output = &trimmed
		case "color":
			dst.Color = &trimmed
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectList(value any, field string) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected list for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		return []string{trimmed}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return out, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

// ParseBool accepts the usual truthy/falsy literals.
func ParseBool(raw, field string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean for %s: %q", field, raw)
	}
}

// ParseIntInRange parses raw and enforces [min, max].
func ParseIntInRange(raw, field string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q", field, raw)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", field, min, max)
	}
	return n, nil
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
