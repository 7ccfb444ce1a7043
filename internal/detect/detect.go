package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Language はファイルパスと先頭内容から言語タグを推定します。
// パス（既知のファイル名 → 拡張子）が最優先で、決まらなければ
// shebang 行を見ます。どちらでも決まらない場合は空文字列です。
func Language(path string, content []byte) string {
	name := byPath(path)
	if name != "" {
		// .m は Objective-C と MATLAB で衝突するため内容で判別する
		if name == "objective-c" && looksLikeMatlab(content) {
			return ""
		}
		return name
	}
	return byShebang(content)
}

func byPath(p string) string {
	base := strings.ToLower(filepath.Base(p))
	if lang, ok := basenameLanguages[base]; ok {
		return lang
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return ""
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	// foo.conf.j2 のような二重拡張子は内側で引き直す
	stem := strings.TrimSuffix(base, ext)
	if inner := filepath.Ext(stem); inner != "" {
		if lang, ok := extensionLanguages[inner]; ok {
			return lang
		}
	}
	return ""
}

func byShebang(content []byte) string {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(content, '\n')
	if end == -1 {
		end = len(content)
	}
	line := strings.ToLower(string(content[:end]))
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '/' || r == '\t'
	})
	for _, f := range fields {
		if lang, ok := shebangLanguages[f]; ok {
			return lang
		}
	}
	return ""
}

// Normalize は言語タグの表記ゆれ（別名・大文字小文字）を正規化します。
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canon, ok := aliases[n]; ok {
		return canon
	}
	return n
}

// CanonicalList は --lang フィルタの値を正規化し重複を除きます。
func CanonicalList(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := Normalize(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

// Allowed は検出済みタグが許可リストに含まれるかを返します。
// 空の許可リストはすべてを許可します。
func Allowed(tag string, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := Normalize(tag)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if Normalize(raw) == detected {
			return true
		}
	}
	return false
}

var basenameLanguages = map[string]string{
	"makefile":          "make",
	"gnumakefile":       "make",
	"cmakelists.txt":    "cmake",
	"dockerfile":        "dockerfile",
	"jenkinsfile":       "groovy",
	"vagrantfile":       "ruby",
	"gemfile":           "ruby",
	"rakefile":          "ruby",
	"config.ru":         "ruby",
	"justfile":          "make",
	"pyproject.toml":    "toml",
	"cargo.toml":        "toml",
	"cargo.lock":        "toml",
	"pipfile":           "toml",
	"package.json":      "json",
	"package-lock.json": "json",
	"composer.json":     "json",
	"tsconfig.json":     "json",
	"pom.xml":           "xml",
	"setup.py":          "python",
}

var extensionLanguages = map[string]string{
	".c":          "c",
	".h":          "c",
	".cc":         "cpp",
	".cpp":        "cpp",
	".cxx":        "cpp",
	".hh":         "cpp",
	".hpp":        "cpp",
	".hxx":        "cpp",
	".m":          "objective-c",
	".mm":         "objective-cpp",
	".go":         "go",
	".js":         "javascript",
	".mjs":        "javascript",
	".cjs":        "javascript",
	".jsx":        "javascriptreact",
	".ts":         "typescript",
	".tsx":        "typescriptreact",
	".py":         "python",
	".pyw":        "python",
	".pyi":        "python",
	".rb":         "ruby",
	".rake":       "ruby",
	".gemspec":    "ruby",
	".php":        "php",
	".phtml":      "php",
	".cs":         "csharp",
	".vb":         "vb",
	".fs":         "fsharp",
	".java":       "java",
	".kt":         "kotlin",
	".kts":        "kotlin",
	".scala":      "scala",
	".groovy":     "groovy",
	".swift":      "swift",
	".rs":         "rust",
	".dart":       "dart",
	".erl":        "erlang",
	".hrl":        "erlang",
	".ex":         "elixir",
	".exs":        "elixir",
	".hs":         "haskell",
	".lhs":        "haskell",
	".clj":        "clojure",
	".cljs":       "clojure",
	".edn":        "clojure",
	".elm":        "elm",
	".ml":         "ocaml",
	".mli":        "ocaml",
	".sh":         "shellscript",
	".bash":       "shellscript",
	".zsh":        "shellscript",
	".ksh":        "shellscript",
	".fish":       "fish",
	".ps1":        "powershell",
	".psm1":       "powershell",
	".psd1":       "powershell",
	".bat":        "bat",
	".cmd":        "bat",
	".sql":        "sql",
	".pgsql":      "sql",
	".plsql":      "sql",
	".json":       "json",
	".jsonc":      "jsonc",
	".json5":      "jsonc",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".ini":        "ini",
	".cfg":        "ini",
	".conf":       "ini",
	".properties": "properties",
	".env":        "dotenv",
	".txt":        "plaintext",
	".md":         "markdown",
	".markdown":   "markdown",
	".rst":        "restructuredtext",
	".tex":        "latex",
	".html":       "html",
	".htm":        "html",
	".xhtml":      "html",
	".vue":        "vue",
	".svelte":     "svelte",
	".xml":        "xml",
	".svg":        "xml",
	".plist":      "xml",
	".csproj":     "xml",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".less":       "less",
	".proto":      "proto",
	".graphql":    "graphql",
	".gql":        "graphql",
	".hcl":        "hcl",
	".tf":         "terraform",
	".tfvars":     "terraform",
	".cue":        "cue",
	".bzl":        "starlark",
	".star":       "starlark",
	".bazel":      "starlark",
	".dockerfile": "dockerfile",
	".mk":         "make",
	".make":       "make",
	".tpl":        "gotemplate",
	".tmpl":       "gotemplate",
	".jinja":      "jinja",
	".jinja2":     "jinja",
	".j2":         "jinja",
	".twig":       "twig",
	".hbs":        "handlebars",
	".mustache":   "handlebars",
	".erb":        "erb",
	".haml":       "haml",
	".lisp":       "lisp",
	".cl":         "lisp",
	".scm":        "scheme",
	".rkt":        "racket",
	".lua":        "lua",
	".pl":         "perl",
	".pm":         "perl",
	".r":          "r",
	".jl":         "julia",
	".nim":        "nim",
	".zig":        "zig",
	".vim":        "vim",
}

var aliases = map[string]string{
	"c#":         "csharp",
	"cs":         "csharp",
	"c++":        "cpp",
	"cc":         "cpp",
	"htm":        "html",
	"js":         "javascript",
	"mjs":        "javascript",
	"jsx":        "javascriptreact",
	"ts":         "typescript",
	"tsx":        "typescriptreact",
	"kt":         "kotlin",
	"rb":         "ruby",
	"py":         "python",
	"ps":         "powershell",
	"ps1":        "powershell",
	"sh":         "shellscript",
	"bash":       "shellscript",
	"shell":      "shellscript",
	"zsh":        "shellscript",
	"batch":      "bat",
	"yml":        "yaml",
	"md":         "markdown",
	"mk":         "make",
	"tf":         "terraform",
	"text":       "plaintext",
	"txt":        "plaintext",
	"dockerfile": "dockerfile",
}

var shebangLanguages = map[string]string{
	"python":  "python",
	"python2": "python",
	"python3": "python",
	"pypy":    "python",
	"node":    "javascript",
	"deno":    "javascript",
	"perl":    "perl",
	"ruby":    "ruby",
	"php":     "php",
	"bash":    "shellscript",
	"sh":      "shellscript",
	"zsh":     "shellscript",
	"ksh":     "shellscript",
	"dash":    "shellscript",
	"fish":    "fish",
	"pwsh":    "powershell",
	"lua":     "lua",
	"groovy":  "groovy",
	"swift":   "swift",
	"awk":     "awk",
	"elixir":  "elixir",
	"escript": "erlang",
	"rscript": "r",
}

// .m ファイルの内容判別。MATLAB らしい行が見つかれば Objective-C ではないと判断する。
func looksLikeMatlab(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	sawMatlabKeyword := false
	for _, line := range strings.Split(string(sample), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "@interface") || strings.HasPrefix(lower, "@implementation") || strings.HasPrefix(lower, "#import") {
			return false
		}
		if strings.HasPrefix(lower, "function") || strings.HasPrefix(lower, "classdef") {
			return true
		}
		if strings.HasPrefix(lower, "properties") || strings.HasPrefix(lower, "methods") {
			sawMatlabKeyword = true
		}
	}
	return sawMatlabKeyword
}
