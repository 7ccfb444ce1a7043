package config

import (
	"github.com/phyten/annox/internal/lang"
	"github.com/phyten/annox/internal/registry"
)

// Annotation は構成ファイル上の 1 アノテーション種別です。
// name / pattern / markdown 以外のキーはスタイル情報として
// そのまま描画側へ受け渡されます。
type Annotation struct {
	Name     string
	Pattern  string
	Markdown bool
	Style    map[string]any
}

// Language は構成ファイル上の 1 言語記述子です。
type Language struct {
	IDs   []string
	Line  []string
	Block []string
	Skip  []string
}

// UIConfig holds presentation settings. Pointers mark presence so layers
// merge without clobbering earlier values.
type UIConfig struct {
	Output *string
	Color  *string
}

// Config is one configuration layer. Annotations and Languages are nil when
// the section is absent, which is different from an empty list.
type Config struct {
	Annotations *[]Annotation
	Languages   *[]Language
	UI          UIConfig
}

// Settings is a fully resolved configuration.
type Settings struct {
	Annotations []registry.KindConfig
	Languages   []lang.Descriptor
	Output      string
	Color       string
}

// Defaults returns the built-in settings: TODO and FIXME markers over the
// built-in language table.
func Defaults() Settings {
	return Settings{
		Annotations: []registry.KindConfig{
			{
				Name:    "TODO",
				Pattern: `TODO:?\s*[^\n]*`,
				Style:   map[string]any{"color": "blue", "bold": true},
			},
			{
				Name:    "FIXME",
				Pattern: `FIXME:?\s*[^\n]*`,
				Style:   map[string]any{"color": "red", "bold": true},
			},
		},
		Languages: lang.Defaults(),
		Output:    "table",
		Color:     "auto",
	}
}

// KindConfigs converts configured annotations into registry inputs,
// preserving insertion order. Returns nil when the section was absent.
func KindConfigs(annotations *[]Annotation) []registry.KindConfig {
	if annotations == nil {
		return nil
	}
	out := make([]registry.KindConfig, 0, len(*annotations))
	for _, a := range *annotations {
		out = append(out, registry.KindConfig{
			Name:     a.Name,
			Pattern:  a.Pattern,
			Markdown: a.Markdown,
			Style:    a.Style,
		})
	}
	return out
}

// Descriptors converts configured languages into grammar descriptors.
// Returns nil when the section was absent.
func Descriptors(languages *[]Language) []lang.Descriptor {
	if languages == nil {
		return nil
	}
	out := make([]lang.Descriptor, 0, len(*languages))
	for _, l := range *languages {
		out = append(out, lang.Descriptor{
			Identifiers:   cloneStrings(l.IDs),
			LineComments:  cloneStrings(l.Line),
			BlockComments: cloneStrings(l.Block),
			SkippedBlocks: cloneStrings(l.Skip),
		})
	}
	return out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
