package scan

import (
	"sort"

	"github.com/phyten/annox/internal/model"
	"github.com/phyten/annox/internal/registry"
)

// Document is the minimal view of an editor buffer the orchestrator needs.
type Document interface {
	Text() string
	LanguageTag() string
	Path() string
	PositionFor(offset int) model.Position
}

// Sink receives the grouped decorations for one document. Every kind of the
// registry is painted on every scan, empty lists included, so previously
// painted decorations of a kind clear when its matches disappear.
type Sink interface {
	Paint(kind *registry.Kind, doc Document, decs []model.Decoration) error
}

// Run は 1 文書を走査し、種別ごとにまとめた装飾を sink に渡します。
// 文書の言語タグに一致するすべての記述子が結果に寄与します。
// 走査は渡されたレジストリ世代だけを使い、走査間で状態を持ちません。
func Run(doc Document, reg *registry.Registry, sink Sink) error {
	text := doc.Text()
	tag := doc.LanguageTag()

	acc := make(map[string][]model.Decoration, len(reg.Kinds()))
	for _, l := range reg.Languages() {
		if !l.Matches(tag) {
			continue
		}
		comments := Comments(text, l)
		for {
			c, ok := comments.Next()
			if !ok {
				break
			}
			anns := Annotations(c.Body, c.Offset, l.Annotation)
			for {
				a, ok := anns.Next()
				if !ok {
					break
				}
				k := reg.Kind(a.Kind)
				if k == nil {
					continue
				}
				dec := model.Decoration{
					Kind:  a.Kind,
					Value: a.Value,
					Span: model.Span{
						Start:     doc.PositionFor(a.Start),
						End:       doc.PositionFor(a.End),
						ByteStart: a.Start,
						ByteEnd:   a.End,
					},
				}
				if k.Markdown {
					dec.Hover = &model.Hover{Markdown: a.Value, Trusted: true}
				}
				acc[a.Kind] = append(acc[a.Kind], dec)
			}
		}
	}

	for _, k := range reg.Kinds() {
		decs := acc[k.Name]
		// stable order even when several descriptors contributed
		sort.SliceStable(decs, func(i, j int) bool {
			return decs[i].Span.ByteStart < decs[j].Span.ByteStart
		})
		if err := sink.Paint(k, doc, decs); err != nil {
			return err
		}
	}
	return nil
}
