package output

import (
	"fmt"
	"io"
	"strings"
)

// WriteTSV は行をタブ区切りで出力します。値中のタブ・改行はエスケープされます。
func WriteTSV(w io.Writer, rows []Row, sel FieldSelection) error {
	if _, err := fmt.Fprintln(w, strings.Join(Headers(sel.Fields), "\t")); err != nil {
		return err
	}
	for _, r := range rows {
		vals := RowValues(r, sel.Fields)
		for i := range vals {
			vals[i] = escapeTSV(vals[i])
		}
		if _, err := fmt.Fprintln(w, strings.Join(vals, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func escapeTSV(s string) string {
	if !strings.ContainsAny(s, "\t\n\r\\") {
		return s
	}
	r := strings.NewReplacer("\\", "\\\\", "\t", "\\t", "\n", "\\n", "\r", "\\r")
	return r.Replace(s)
}
