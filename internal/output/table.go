package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/annox/internal/termcolor"
	"github.com/phyten/annox/internal/textutil"
)

// TableOptions は表形式出力の装飾・幅制御です。
type TableOptions struct {
	Fields FieldSelection
	// Styles は種別名 → 端末スタイルの対応表。kind と value 列に適用されます。
	Styles map[string]termcolor.Style
	Color  bool
	// MaxValueWidth が正のとき value 列をその表示幅に切り詰めます。
	MaxValueWidth int
}

// WriteTable は行を桁揃えしたプレーンテキスト表として出力します。
// 幅計算は ANSI エスケープを除いた表示幅で行うため、色付けしても桁が崩れません。
func WriteTable(w io.Writer, rows []Row, opts TableOptions) error {
	fields := opts.Fields.Fields
	if len(fields) == 0 {
		sel, err := ResolveFields(DefaultFields)
		if err != nil {
			return err
		}
		fields = sel.Fields
	}

	headers := Headers(fields)
	cells := make([][]string, 0, len(rows)+1)
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = termcolor.Apply(termcolor.HeaderStyle(), h, opts.Color)
	}
	cells = append(cells, styled)

	for _, r := range rows {
		vals := RowValues(r, fields)
		style, hasStyle := opts.Styles[r.Kind]
		for i, f := range fields {
			if f == FieldValue && opts.MaxValueWidth > 0 {
				vals[i] = textutil.TruncateByWidth(vals[i], opts.MaxValueWidth, "…")
			}
			if hasStyle && (f == FieldKind || f == FieldValue) {
				vals[i] = termcolor.Apply(style, vals[i], opts.Color)
			}
		}
		cells = append(cells, vals)
	}

	widths := make([]int, len(fields))
	for _, row := range cells {
		for i, cell := range row {
			if w := textutil.VisibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, row := range cells {
		parts := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				parts[i] = cell
				continue
			}
			parts[i] = textutil.PadRight(cell, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}
