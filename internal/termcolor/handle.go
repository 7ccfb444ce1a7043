package termcolor

import "github.com/phyten/annox/internal/registry"

// Handle is the terminal counterpart of an editor decoration type: one
// resolved Style per annotation kind and registry generation.
type Handle struct {
	Name     string
	Style    Style
	disposed bool
}

// Dispose releases the handle. Terminal styles hold no external resources,
// but the flag lets callers assert lifecycle bugs in tests.
func (h *Handle) Dispose() { h.disposed = true }

// Disposed reports whether the handle has been released.
func (h *Handle) Disposed() bool { return h.disposed }

// Allocator builds terminal style handles from opaque style payloads.
type Allocator struct {
	Profile Profile
}

func (a *Allocator) Allocate(name string, payload map[string]any) (registry.StyleHandle, error) {
	style, err := FromPayload(payload, a.Profile)
	if err != nil {
		return nil, err
	}
	return &Handle{Name: name, Style: style}, nil
}
