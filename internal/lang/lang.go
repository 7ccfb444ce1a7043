package lang

import (
	"strings"

	"github.com/phyten/annox/internal/matcher"
)

// Descriptor は 1 つの言語ファミリのコメント文法を表します。
// 各フィールドは正規表現フラグメントの順序付きリストで、
// 同じ位置で複数のパターンが一致し得る場合は先頭のものが勝ちます。
type Descriptor struct {
	Identifiers   []string
	LineComments  []string
	BlockComments []string
	SkippedBlocks []string
}

// Matches reports whether the descriptor applies to the given language tag.
func (d Descriptor) Matches(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	for _, id := range d.Identifiers {
		if strings.ToLower(id) == tag {
			return true
		}
	}
	return false
}

// Compiled は Descriptor に、現在のアノテーション構成から導出した
// コメント検出式・アノテーション検出式を束ねたものです。
// 導出フィールドはレジストリの世代ごとに作り直され、使い回しません。
type Compiled struct {
	Descriptor
	Comment    *matcher.Pattern
	Annotation *matcher.Pattern
}

// Compile builds the derived comment matcher for this descriptor and
// attaches the generation's shared annotation matcher.
func (d Descriptor) Compile(annotation *matcher.Pattern) (*Compiled, error) {
	comment, err := matcher.CompileComment(d.LineComments, d.BlockComments, d.SkippedBlocks)
	if err != nil {
		return nil, err
	}
	return &Compiled{Descriptor: d, Comment: comment, Annotation: annotation}, nil
}

// Common fragments shared by the built-in table.
const (
	fragSlashLine   = `//[^\n]*`
	fragHashLine    = `#[^\n]*`
	fragDashLine    = `--[^\n]*`
	fragSemiLine    = `;[^\n]*`
	fragCBlock      = `/\*(?s:.*?)\*/`
	fragDQString    = `"(?:\\.|[^"\\\n])*"`
	fragSQString    = `'(?:\\.|[^'\\\n])*'`
	fragBacktickRaw = "`(?s:[^`]*)`"
)

// Defaults returns the built-in descriptor table. Callers own the slice and
// may append configured descriptors to it.
func Defaults() []Descriptor {
	return []Descriptor{
		{
			Identifiers: []string{
				"c", "cpp", "objective-c", "objective-cpp", "go", "java", "csharp",
				"scala", "kotlin", "swift", "groovy", "dart", "rust", "zig",
				"javascript", "javascriptreact", "typescript", "typescriptreact",
				"php", "proto", "thrift", "verilog", "systemverilog", "gradle",
			},
			LineComments:  []string{fragSlashLine},
			BlockComments: []string{fragCBlock},
			SkippedBlocks: []string{fragDQString, fragSQString, fragBacktickRaw},
		},
		{
			Identifiers: []string{
				"shell", "shellscript", "fish", "perl", "yaml", "toml", "make", "ninja",
				"dockerfile", "dotenv", "elixir", "erlang", "julia", "nim",
				"rego", "cmake", "pip", "cue", "procfile", "r",
			},
			LineComments:  []string{fragHashLine},
			SkippedBlocks: []string{fragDQString, fragSQString},
		},
		{
			Identifiers:   []string{"python", "starlark", "cython"},
			LineComments:  []string{fragHashLine},
			SkippedBlocks: []string{`"""(?s:.*?)"""`, `'''(?s:.*?)'''`, fragDQString, fragSQString},
		},
		{
			Identifiers:   []string{"ruby", "erb"},
			LineComments:  []string{fragHashLine},
			BlockComments: []string{`(?ms:^=begin\b.*?^=end\b)`},
			SkippedBlocks: []string{fragDQString, fragSQString},
		},
		{
			Identifiers:   []string{"html", "vue", "svelte", "xml", "markdown", "aspnet"},
			BlockComments: []string{`<!--(?s:.*?)-->`},
		},
		{
			Identifiers:   []string{"sql"},
			LineComments:  []string{fragDashLine},
			BlockComments: []string{fragCBlock},
			SkippedBlocks: []string{fragSQString},
		},
		{
			Identifiers:   []string{"css", "scss", "sass", "less", "stylus"},
			BlockComments: []string{fragCBlock},
			SkippedBlocks: []string{fragDQString, fragSQString},
		},
		{
			Identifiers:   []string{"haskell", "elm", "ocaml"},
			LineComments:  []string{fragDashLine},
			BlockComments: []string{`\{-(?s:.*?)-\}`},
			SkippedBlocks: []string{fragDQString},
		},
		{
			Identifiers:  []string{"lisp", "common-lisp", "scheme", "racket"},
			LineComments: []string{fragSemiLine},
			SkippedBlocks: []string{
				fragDQString,
			},
		},
		{
			Identifiers:  []string{"ini", "properties"},
			LineComments: []string{fragSemiLine, fragHashLine},
		},
		{
			Identifiers:   []string{"hcl", "terraform"},
			LineComments:  []string{fragSlashLine, fragHashLine},
			BlockComments: []string{fragCBlock},
			SkippedBlocks: []string{fragDQString},
		},
		{
			Identifiers:   []string{"powershell"},
			LineComments:  []string{fragHashLine},
			BlockComments: []string{`<#(?s:.*?)#>`},
			SkippedBlocks: []string{fragDQString, fragSQString},
		},
		{
			Identifiers:   []string{"jinja", "twig", "django", "liquid"},
			BlockComments: []string{`\{#(?s:.*?)#\}`},
		},
		{
			Identifiers:  []string{"batch", "bat"},
			LineComments: []string{`(?i:rem )[^\n]*`, `::[^\n]*`},
		},
		{
			Identifiers:  []string{"vb", "vbnet"},
			LineComments: []string{`'[^\n]*`},
			SkippedBlocks: []string{
				fragDQString,
			},
		},
		{
			Identifiers:  []string{"plaintext", "text"},
			LineComments: []string{fragSlashLine, fragHashLine},
		},
	}
}
