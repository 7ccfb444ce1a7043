package scan

import (
	"reflect"
	"testing"

	"github.com/phyten/annox/internal/lang"
	"github.com/phyten/annox/internal/matcher"
	"github.com/phyten/annox/internal/model"
	"github.com/phyten/annox/internal/registry"
)

type stubDoc struct {
	text string
	tag  string
	path string
	ix   *model.LineIndex
}

func newStubDoc(text, tag string) *stubDoc {
	return &stubDoc{text: text, tag: tag, path: "stub.txt", ix: model.NewLineIndex(text)}
}

func (d *stubDoc) Text() string        { return d.text }
func (d *stubDoc) LanguageTag() string { return d.tag }
func (d *stubDoc) Path() string        { return d.path }

func (d *stubDoc) PositionFor(offset int) model.Position { return d.ix.PositionFor(offset) }

type paintCall struct {
	kind string
	decs []model.Decoration
}

type captureSink struct {
	calls []paintCall
}

func (s *captureSink) Paint(kind *registry.Kind, _ Document, decs []model.Decoration) error {
	s.calls = append(s.calls, paintCall{kind: kind.Name, decs: decs})
	return nil
}

func mustRegistry(t *testing.T, kinds []registry.KindConfig, descriptors []lang.Descriptor) *registry.Registry {
	t.Helper()
	reg, err := registry.Rebuild(kinds, descriptors, nil)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return reg
}

var plaintext = []lang.Descriptor{{
	Identifiers:  []string{"plaintext"},
	LineComments: []string{`//.*`},
}}

// 仕様どおりの一連の流れ: `hello // TODO: fix this\nworld` から
// オフセット 6 のコメント本文と TODO 1 件が得られること。
func TestRunEndToEnd(t *testing.T) {
	reg := mustRegistry(t, []registry.KindConfig{
		{Name: "TODO", Pattern: `TODO:?\s*(?P<rest>.*)`},
	}, plaintext)
	doc := newStubDoc("hello // TODO: fix this\nworld", "plaintext")

	comments := Comments(doc.text, reg.Languages()[0])
	c, ok := comments.Next()
	if !ok {
		t.Fatal("expected one comment body")
	}
	if c.Body != "// TODO: fix this" || c.Offset != 6 {
		t.Fatalf("unexpected comment %q at %d", c.Body, c.Offset)
	}
	if _, ok := comments.Next(); ok {
		t.Fatal("expected no further comment bodies")
	}

	sink := &captureSink{}
	if err := Run(doc, reg, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("expected one paint call, got %d", len(sink.calls))
	}
	decs := sink.calls[0].decs
	if len(decs) != 1 {
		t.Fatalf("expected one decoration, got %+v", decs)
	}
	d := decs[0]
	if d.Value != "TODO: fix this" {
		t.Errorf("raw value = %q", d.Value)
	}
	if d.Span.ByteStart != 9 || d.Span.ByteEnd != 23 {
		t.Errorf("span = %d..%d, want 9..23", d.Span.ByteStart, d.Span.ByteEnd)
	}
	if d.Span.Start != (model.Position{Line: 1, Col: 10}) {
		t.Errorf("start position = %+v", d.Span.Start)
	}
}

func TestRunCoversEachKindOnce(t *testing.T) {
	reg := mustRegistry(t, []registry.KindConfig{
		{Name: "TODO", Pattern: `TODO\b`},
		{Name: "FIXME", Pattern: `FIXME\b`},
		{Name: "NOTE", Pattern: `NOTE\b`},
	}, plaintext)
	doc := newStubDoc("// TODO first\n// FIXME second\n// NOTE third\n", "plaintext")
	sink := &captureSink{}
	if err := Run(doc, reg, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.calls) != 3 {
		t.Fatalf("expected paint for all three kinds, got %d", len(sink.calls))
	}
	for _, call := range sink.calls {
		if len(call.decs) != 1 {
			t.Errorf("kind %s: expected 1 decoration, got %d", call.kind, len(call.decs))
			continue
		}
		if call.decs[0].Value != call.kind {
			t.Errorf("kind %s: raw value %q", call.kind, call.decs[0].Value)
		}
	}
}

// スキップ領域はコメント境界の検出だけに影響し、本文の中身には影響しない。
func TestRunSkipSuppression(t *testing.T) {
	descriptors := []lang.Descriptor{{
		Identifiers:   []string{"plaintext"},
		LineComments:  []string{`//.*`},
		SkippedBlocks: []string{`"[^"]*"`},
	}}
	reg := mustRegistry(t, []registry.KindConfig{{Name: "TODO", Pattern: `TODO\b`}}, descriptors)
	doc := newStubDoc(`// TODO "// FAKE"`, "plaintext")

	comments := Comments(doc.text, reg.Languages()[0])
	c, ok := comments.Next()
	if !ok {
		t.Fatal("expected a comment body")
	}
	// コメントが先勝ちするので引用部分も本文に含まれる
	if c.Body != `// TODO "// FAKE"` {
		t.Fatalf("unexpected body %q", c.Body)
	}

	sink := &captureSink{}
	if err := Run(doc, reg, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.calls[0].decs) != 1 {
		t.Fatalf("expected TODO found exactly once, got %+v", sink.calls[0].decs)
	}
}

func TestRunStringBeforeCommentIsSkipped(t *testing.T) {
	descriptors := []lang.Descriptor{{
		Identifiers:   []string{"plaintext"},
		LineComments:  []string{`//.*`},
		SkippedBlocks: []string{`"[^"]*"`},
	}}
	reg := mustRegistry(t, []registry.KindConfig{{Name: "TODO", Pattern: `TODO\b`}}, descriptors)
	doc := newStubDoc(`s := "// TODO in string"; x // TODO real`, "plaintext")
	sink := &captureSink{}
	if err := Run(doc, reg, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	decs := sink.calls[0].decs
	if len(decs) != 1 {
		t.Fatalf("expected only the real TODO, got %+v", decs)
	}
	if decs[0].Span.ByteStart <= len(`s := "// TODO in string"`) {
		t.Fatalf("TODO found inside the string literal: %+v", decs[0])
	}
}

func TestRunIsIdempotent(t *testing.T) {
	reg := mustRegistry(t, []registry.KindConfig{
		{Name: "TODO", Pattern: `TODO:?[^\n]*`},
		{Name: "HACK", Pattern: `HACK\b`},
	}, plaintext)
	doc := newStubDoc("// TODO: one\n// HACK\n// TODO: two\n", "plaintext")

	first := &captureSink{}
	second := &captureSink{}
	if err := Run(doc, reg, first); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(doc, reg, second); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first.calls, second.calls) {
		t.Fatalf("scans differ:\n%+v\n%+v", first.calls, second.calls)
	}
}

// マッチしなかった種別にも空リストが必ず送られること。
func TestRunPaintsEmptyKinds(t *testing.T) {
	reg := mustRegistry(t, []registry.KindConfig{
		{Name: "TODO", Pattern: `TODO\b`},
		{Name: "FIXME", Pattern: `FIXME\b`},
	}, plaintext)
	doc := newStubDoc("// TODO only\n", "plaintext")
	sink := &captureSink{}
	if err := Run(doc, reg, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.calls) != 2 {
		t.Fatalf("expected both kinds painted, got %d calls", len(sink.calls))
	}
	if sink.calls[1].kind != "FIXME" || len(sink.calls[1].decs) != 0 {
		t.Fatalf("expected empty FIXME paint, got %+v", sink.calls[1])
	}
}

func TestRunMarkdownKindsGetTrustedHover(t *testing.T) {
	reg := mustRegistry(t, []registry.KindConfig{
		{Name: "NOTE", Pattern: `NOTE:?[^\n]*`, Markdown: true},
	}, plaintext)
	doc := newStubDoc("// NOTE: **bold**\n", "plaintext")
	sink := &captureSink{}
	if err := Run(doc, reg, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	dec := sink.calls[0].decs[0]
	if dec.Hover == nil || !dec.Hover.Trusted {
		t.Fatalf("expected trusted hover, got %+v", dec.Hover)
	}
	if dec.Hover.Markdown != "NOTE: **bold**" {
		t.Fatalf("hover markdown = %q", dec.Hover.Markdown)
	}
}

func TestRunUnmatchedLanguagePaintsEmpty(t *testing.T) {
	reg := mustRegistry(t, []registry.KindConfig{{Name: "TODO", Pattern: `TODO\b`}}, plaintext)
	doc := newStubDoc("// TODO hidden\n", "rust")
	sink := &captureSink{}
	if err := Run(doc, reg, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.calls) != 1 || len(sink.calls[0].decs) != 0 {
		t.Fatalf("expected one empty paint, got %+v", sink.calls)
	}
}

func TestRunMultipleDescriptorsContribute(t *testing.T) {
	descriptors := []lang.Descriptor{
		{Identifiers: []string{"mixed"}, LineComments: []string{`//[^\n]*`}},
		{Identifiers: []string{"mixed"}, LineComments: []string{`#[^\n]*`}},
	}
	reg := mustRegistry(t, []registry.KindConfig{{Name: "TODO", Pattern: `TODO\b`}}, descriptors)
	doc := newStubDoc("# TODO hash\n// TODO slash\n", "mixed")
	sink := &captureSink{}
	if err := Run(doc, reg, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	decs := sink.calls[0].decs
	if len(decs) != 2 {
		t.Fatalf("expected both descriptors to contribute, got %+v", decs)
	}
	if decs[0].Span.ByteStart >= decs[1].Span.ByteStart {
		t.Fatalf("decorations must be ordered by offset: %+v", decs)
	}
}

// 空文字列にマッチし得るパターンでも走査は停止し、空のマーカーは出力されない。
func TestAnnotationsZeroWidthSafety(t *testing.T) {
	p, err := matcher.CompileAnnotation([]string{"ANY"}, []string{`T*`})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	body := "xxTTxx"
	it := Annotations(body, 100, p)
	var got []Tagged
	for {
		a, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, a)
	}
	if len(got) != 1 {
		t.Fatalf("expected a single non-empty match, got %+v", got)
	}
	if got[0].Start != 102 || got[0].End != 104 || got[0].Value != "TT" {
		t.Fatalf("unexpected match %+v", got[0])
	}
}
