package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phyten/annox/internal/output"
)

type SortKey struct {
	Name string
	Desc bool
}

type SortSpec struct {
	Keys []SortKey
}

// ParseSortSpec parses a comma separated sort spec. Each key may carry a
// leading "+" or "-" for direction, e.g. "kind,-line" or "path".
func ParseSortSpec(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}, nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: empty segment")
		}
		desc := false
		switch token[0] {
		case '+':
			token = token[1:]
		case '-':
			desc = true
			token = token[1:]
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: sign without name")
		}
		name := strings.ToLower(token)
		switch name {
		case "location":
			keys = append(keys, SortKey{Name: "path", Desc: desc}, SortKey{Name: "line", Desc: desc})
			continue
		case "path", "kind", "line", "col", "value":
			// accepted as is
		default:
			return SortSpec{}, fmt.Errorf("invalid sort key: %s", token)
		}
		keys = append(keys, SortKey{Name: name, Desc: desc})
	}
	return SortSpec{Keys: keys}, nil
}

// ApplySort sorts rows by the spec, falling back to path and byte offset so
// the output is deterministic even without an explicit spec.
func ApplySort(rows []output.Row, spec SortSpec) {
	keys := spec.Keys
	if len(keys) == 0 {
		keys = []SortKey{{Name: "path"}}
	} else {
		keys = append(append([]SortKey{}, keys...), SortKey{Name: "path"})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a := &rows[i]
		b := &rows[j]
		for _, key := range keys {
			switch key.Name {
			case "path":
				if a.Path != b.Path {
					if key.Desc {
						return a.Path > b.Path
					}
					return a.Path < b.Path
				}
			case "kind":
				if a.Kind != b.Kind {
					if key.Desc {
						return a.Kind > b.Kind
					}
					return a.Kind < b.Kind
				}
			case "line":
				if a.Span.Start.Line != b.Span.Start.Line {
					if key.Desc {
						return a.Span.Start.Line > b.Span.Start.Line
					}
					return a.Span.Start.Line < b.Span.Start.Line
				}
			case "col":
				if a.Span.Start.Col != b.Span.Start.Col {
					if key.Desc {
						return a.Span.Start.Col > b.Span.Start.Col
					}
					return a.Span.Start.Col < b.Span.Start.Col
				}
			case "value":
				if a.Value != b.Value {
					if key.Desc {
						return a.Value > b.Value
					}
					return a.Value < b.Value
				}
			}
		}
		return a.Span.ByteStart < b.Span.ByteStart
	})
}
