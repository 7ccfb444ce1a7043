package output

import "github.com/phyten/annox/internal/model"

// Row は 1 件のアノテーションを表形式出力向けに平坦化したレコードです。
type Row struct {
	Path  string     `json:"path"`
	Kind  string     `json:"kind"`
	Value string     `json:"value"`
	Span  model.Span `json:"span"`
}

// FromDecorations は 1 ドキュメント・1 種別分の装飾リストを行に変換します。
func FromDecorations(path, kind string, decs []model.Decoration) []Row {
	rows := make([]Row, 0, len(decs))
	for _, d := range decs {
		rows = append(rows, Row{
			Path:  path,
			Kind:  kind,
			Value: d.Value,
			Span:  d.Span,
		})
	}
	return rows
}
