package lang

import (
	"testing"

	"github.com/phyten/annox/internal/matcher"
)

func TestDefaultsCompile(t *testing.T) {
	annotation, err := matcher.CompileAnnotation(
		[]string{"TODO", "FIXME"},
		[]string{`TODO:?[^\n]*`, `FIXME:?[^\n]*`},
	)
	if err != nil {
		t.Fatalf("annotation compile: %v", err)
	}
	for _, d := range Defaults() {
		if len(d.Identifiers) == 0 {
			t.Fatal("descriptor without identifiers")
		}
		if _, err := d.Compile(annotation); err != nil {
			t.Errorf("descriptor %v failed to compile: %v", d.Identifiers, err)
		}
	}
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	d := Descriptor{Identifiers: []string{"Go", "c"}}
	if !d.Matches("go") || !d.Matches("GO") || !d.Matches(" C ") {
		t.Error("expected tag match regardless of case and spacing")
	}
	if d.Matches("rust") || d.Matches("") {
		t.Error("unexpected tag match")
	}
}

// 三連引用符の文字列はコメント検出から除外されること。
func TestPythonTripleQuoteIsSkipped(t *testing.T) {
	var python Descriptor
	for _, d := range Defaults() {
		if d.Matches("python") {
			python = d
			break
		}
	}
	c, err := python.Compile(nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	text := "s = \"\"\" # not a comment \"\"\"  # real\n"
	sc := matcher.NewScanner(c.Comment, text)
	var bodies []string
	for {
		m, ok := sc.Next()
		if !ok {
			break
		}
		if m.Name == matcher.BodyGroup {
			bodies = append(bodies, m.Value)
		}
	}
	if len(bodies) != 1 {
		t.Fatalf("expected exactly one comment body, got %v", bodies)
	}
	if bodies[0] != "# real" {
		t.Fatalf("unexpected body %q", bodies[0])
	}
}
