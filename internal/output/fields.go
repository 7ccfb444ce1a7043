package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/annox/internal/model"
)

// Field は一覧出力の 1 列を表します。
type Field string

const (
	FieldPath  Field = "path"
	FieldKind  Field = "kind"
	FieldLine  Field = "line"
	FieldCol   Field = "col"
	FieldSpan  Field = "span"
	FieldValue Field = "value"
)

var fieldOrder = []Field{FieldPath, FieldKind, FieldLine, FieldCol, FieldSpan, FieldValue}

// DefaultFields は --fields 未指定時の列構成です。
const DefaultFields = "path,kind,line,col,value"

// FieldSelection は解決済みの列リストです。
type FieldSelection struct {
	Fields []Field
}

// ResolveFields はカンマ区切りの列指定を検証して FieldSelection に解決します。
// 空文字列は DefaultFields として扱います。
func ResolveFields(spec string) (FieldSelection, error) {
	if strings.TrimSpace(spec) == "" {
		spec = DefaultFields
	}
	known := make(map[Field]struct{}, len(fieldOrder))
	for _, f := range fieldOrder {
		known[f] = struct{}{}
	}
	var sel FieldSelection
	seen := make(map[Field]struct{})
	for _, raw := range strings.Split(spec, ",") {
		name := Field(strings.ToLower(strings.TrimSpace(raw)))
		if name == "" {
			continue
		}
		if _, ok := known[name]; !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", raw)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		sel.Fields = append(sel.Fields, name)
	}
	if len(sel.Fields) == 0 {
		return FieldSelection{}, fmt.Errorf("no fields selected")
	}
	return sel, nil
}

// Headers は選択された列のヘッダ文字列を返します。
func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.ToUpper(string(f))
	}
	return out
}

// RowValues は 1 行分の値を列指定の順で並べます。
func RowValues(r Row, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		switch f {
		case FieldPath:
			out[i] = r.Path
		case FieldKind:
			out[i] = r.Kind
		case FieldLine:
			out[i] = strconv.Itoa(r.Span.Start.Line)
		case FieldCol:
			out[i] = strconv.Itoa(r.Span.Start.Col)
		case FieldSpan:
			out[i] = formatSpan(r.Span)
		case FieldValue:
			out[i] = r.Value
		}
	}
	return out
}

func formatSpan(s model.Span) string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Col, s.End.Line, s.End.Col)
}
