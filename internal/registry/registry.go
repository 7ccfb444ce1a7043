package registry

import (
	"errors"
	"fmt"

	"github.com/phyten/annox/internal/lang"
	"github.com/phyten/annox/internal/matcher"
)

var (
	// ErrConfigMissing is returned when the annotation or language section
	// is absent entirely. An empty list is valid and yields a registry that
	// matches nothing.
	ErrConfigMissing = errors.New("registry: configuration section missing")
	// ErrDuplicateName is returned when two annotation configs share a name.
	ErrDuplicateName = errors.New("registry: duplicate annotation name")
	// ErrInvalidName is returned when a name cannot serve as a capture
	// group identifier in the combined expression.
	ErrInvalidName = errors.New("registry: invalid annotation name")
)

// StyleHandle is an editor-level rendering resource created once per
// registry generation and disposed when the generation is replaced.
type StyleHandle interface {
	Dispose()
}

// StyleAllocator creates rendering resources for annotation kinds. The
// style payload is opaque to the registry and passed through unchanged.
type StyleAllocator interface {
	Allocate(name string, style map[string]any) (StyleHandle, error)
}

// KindConfig は構成ファイル由来の 1 アノテーション種別の定義です。
type KindConfig struct {
	Name     string
	Pattern  string
	Markdown bool
	Style    map[string]any
}

// Kind は検証済みのアノテーション種別と、その世代の描画リソースです。
type Kind struct {
	Name     string
	Pattern  string
	Markdown bool
	Style    map[string]any
	Handle   StyleHandle
}

// Registry は現在有効なアノテーション種別と、言語ごとにコンパイル済みの
// 検出式を保持する世代です。再構成のたびに丸ごと置き換えられ、
// 生成後に変更されることはありません。
type Registry struct {
	kinds      []*Kind
	byName     map[string]*Kind
	annotation *matcher.Pattern
	languages  []*lang.Compiled
}

// Rebuild validates the configuration and returns a fresh registry with
// freshly compiled matchers for every descriptor. The previous registry is
// untouched; callers release it after activating the new one.
func Rebuild(kinds []KindConfig, descriptors []lang.Descriptor, alloc StyleAllocator) (*Registry, error) {
	if kinds == nil || descriptors == nil {
		return nil, ErrConfigMissing
	}

	reg := &Registry{byName: make(map[string]*Kind, len(kinds))}
	names := make([]string, 0, len(kinds))
	fragments := make([]string, 0, len(kinds))
	for _, kc := range kinds {
		if !matcher.ValidGroupName(kc.Name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, kc.Name)
		}
		if _, dup := reg.byName[kc.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, kc.Name)
		}
		k := &Kind{Name: kc.Name, Pattern: kc.Pattern, Markdown: kc.Markdown, Style: kc.Style}
		reg.byName[k.Name] = k
		reg.kinds = append(reg.kinds, k)
		names = append(names, kc.Name)
		fragments = append(fragments, kc.Pattern)
	}

	annotation, err := matcher.CompileAnnotation(names, fragments)
	if err != nil {
		return nil, err
	}
	reg.annotation = annotation
	for _, d := range descriptors {
		compiled, err := d.Compile(annotation)
		if err != nil {
			return nil, err
		}
		reg.languages = append(reg.languages, compiled)
	}

	// Allocate rendering resources last so a rejected rebuild never leaks
	// handles.
	if alloc != nil {
		for _, k := range reg.kinds {
			h, err := alloc.Allocate(k.Name, k.Style)
			if err != nil {
				reg.Release()
				return nil, fmt.Errorf("registry: allocate style for %s: %w", k.Name, err)
			}
			k.Handle = h
		}
	}
	return reg, nil
}

// Release disposes every style handle of this generation.
func (r *Registry) Release() {
	if r == nil {
		return
	}
	for _, k := range r.kinds {
		if k.Handle != nil {
			k.Handle.Dispose()
			k.Handle = nil
		}
	}
}

// Kinds returns the annotation kinds in insertion order.
func (r *Registry) Kinds() []*Kind { return r.kinds }

// Kind returns the kind with the given name, or nil.
func (r *Registry) Kind(name string) *Kind { return r.byName[name] }

// Languages returns the compiled descriptors of this generation.
func (r *Registry) Languages() []*lang.Compiled { return r.languages }

// Annotation returns the generation's combined annotation matcher.
func (r *Registry) Annotation() *matcher.Pattern { return r.annotation }
