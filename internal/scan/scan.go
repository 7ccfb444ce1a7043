package scan

import (
	"github.com/phyten/annox/internal/lang"
	"github.com/phyten/annox/internal/matcher"
)

// Comment は本文テキストと、文書先頭からのバイトオフセットの組です。
type Comment struct {
	Body   string
	Offset int
}

// CommentIter walks every comment body of a document. Matches that hit a
// skipped-block alternative advance the cursor without being yielded, which
// is how string literals suppress false comment detection inside them.
type CommentIter struct {
	sc *matcher.Scanner
}

// Comments starts a fresh scan over text with the descriptor's compiled
// comment matcher. The sequence is finite and not restartable.
func Comments(text string, c *lang.Compiled) *CommentIter {
	return &CommentIter{sc: matcher.NewScanner(c.Comment, text)}
}

// Next returns the next comment body and whether one was found.
func (it *CommentIter) Next() (Comment, bool) {
	for {
		m, ok := it.sc.Next()
		if !ok {
			return Comment{}, false
		}
		if m.Name != matcher.BodyGroup {
			continue
		}
		return Comment{Body: m.Value, Offset: m.Start}, true
	}
}

// Tagged は 1 件のアノテーション検出結果です。オフセットは文書先頭からの
// 絶対バイト位置です。
type Tagged struct {
	Kind  string
	Start int
	End   int
	Value string
}

// AnnotationIter walks annotation occurrences inside one comment body.
type AnnotationIter struct {
	sc   *matcher.Scanner
	base int
}

// Annotations starts a fresh scan over body with the generation's combined
// annotation matcher; base is the body's absolute offset in the document.
func Annotations(body string, base int, p *matcher.Pattern) *AnnotationIter {
	return &AnnotationIter{sc: matcher.NewScanner(p, body), base: base}
}

// Next returns the next annotation occurrence. Empty-but-present captures
// advance the cursor like any zero-width match but are not yielded.
func (it *AnnotationIter) Next() (Tagged, bool) {
	for {
		m, ok := it.sc.Next()
		if !ok {
			return Tagged{}, false
		}
		if m.Name == "" || m.Value == "" {
			continue
		}
		return Tagged{
			Kind:  m.Name,
			Start: it.base + m.Start,
			End:   it.base + m.End,
			Value: m.Value,
		}, true
	}
}
