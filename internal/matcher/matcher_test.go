package matcher

import (
	"strings"
	"testing"
)

func TestCompileCommentは行コメントとスキップ領域を区別する(t *testing.T) {
	p, err := CompileComment([]string{`//[^\n]*`}, nil, []string{`"(?:\\.|[^"\\\n])*"`})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	text := `s := "// not a comment"` + "\n" + `x := 1 // real comment`
	sc := NewScanner(p, text)

	first, ok := sc.Next()
	if !ok {
		t.Fatal("expected a first match")
	}
	if first.Name != "" {
		t.Fatalf("string literal should not carry the body group, got %q", first.Name)
	}
	second, ok := sc.Next()
	if !ok {
		t.Fatal("expected a second match")
	}
	if second.Name != BodyGroup {
		t.Fatalf("expected body group, got %q", second.Name)
	}
	if second.Value != "// real comment" {
		t.Fatalf("unexpected body: %q", second.Value)
	}
	if second.Start != strings.Index(text, "// real") {
		t.Fatalf("unexpected offset: %d", second.Start)
	}
	if _, ok := sc.Next(); ok {
		t.Fatal("expected exhausted scanner")
	}
}

func TestCompileCommentEmptyDescriptor(t *testing.T) {
	p, err := CompileComment(nil, nil, nil)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if !p.Empty() {
		t.Fatal("expected empty pattern")
	}
	sc := NewScanner(p, "// anything")
	if _, ok := sc.Next(); ok {
		t.Fatal("empty pattern must match nothing")
	}
}

func TestCompileAnnotationDispatchesByGroup(t *testing.T) {
	p, err := CompileAnnotation(
		[]string{"TODO", "FIXME"},
		[]string{`TODO:?[^\n]*`, `FIXME:?[^\n]*`},
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	sc := NewScanner(p, "FIXME: a\nTODO b")
	got := make(map[string]string)
	for {
		m, ok := sc.Next()
		if !ok {
			break
		}
		got[m.Name] = m.Value
	}
	if got["FIXME"] != "FIXME: a" {
		t.Errorf("FIXME value = %q", got["FIXME"])
	}
	if got["TODO"] != "TODO b" {
		t.Errorf("TODO value = %q", got["TODO"])
	}
}

func TestCompileAnnotationRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "with space", "ハイライト", "a-b", "1st"} {
		if _, err := CompileAnnotation([]string{name}, []string{"x"}); err == nil {
			t.Errorf("expected error for group name %q", name)
		}
	}
}

func TestCompileAnnotationRejectsBrokenFragment(t *testing.T) {
	if _, err := CompileAnnotation([]string{"TODO"}, []string{"("}); err == nil {
		t.Fatal("expected compile error for unbalanced fragment")
	}
}

// ゼロ幅マッチでもカーソルが必ず前進し、高々 len+1 回で停止すること。
func TestScannerZeroWidthTerminates(t *testing.T) {
	p, err := CompileAnnotation([]string{"ANY"}, []string{`x*`})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	text := "aaxaa"
	sc := NewScanner(p, text)
	prev := -1
	steps := 0
	for {
		m, ok := sc.Next()
		if !ok {
			break
		}
		steps++
		if steps > len(text)+1 {
			t.Fatalf("scanner did not terminate within %d steps", len(text)+1)
		}
		if m.Start <= prev {
			t.Fatalf("offsets must strictly increase: %d after %d", m.Start, prev)
		}
		prev = m.Start
	}
}

func TestScannerZeroWidthThenRealMatch(t *testing.T) {
	p, err := CompileAnnotation([]string{"OPT"}, []string{`a?b`})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	sc := NewScanner(p, "zzab")
	m, ok := sc.Next()
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Value != "ab" || m.Start != 2 || m.End != 4 {
		t.Fatalf("unexpected match %+v", m)
	}
}

func TestValidGroupName(t *testing.T) {
	cases := map[string]bool{
		"TODO":   true,
		"_x9":    true,
		"note2":  true,
		"":       false,
		"9lives": false,
		"a.b":    false,
	}
	for name, want := range cases {
		if got := ValidGroupName(name); got != want {
			t.Errorf("ValidGroupName(%q) = %v, want %v", name, got, want)
		}
	}
}
