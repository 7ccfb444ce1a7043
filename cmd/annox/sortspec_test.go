package main

import (
	"testing"

	"github.com/phyten/annox/internal/model"
	"github.com/phyten/annox/internal/output"
)

func TestParseSortSpec(t *testing.T) {
	spec, err := ParseSortSpec(" kind, -line ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(spec.Keys) != 2 || spec.Keys[0].Name != "kind" || !spec.Keys[1].Desc {
		t.Fatalf("spec = %+v", spec)
	}

	spec, err = ParseSortSpec("location")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(spec.Keys) != 2 || spec.Keys[0].Name != "path" || spec.Keys[1].Name != "line" {
		t.Fatalf("location must expand to path+line: %+v", spec)
	}

	for _, bad := range []string{"bogus", "kind,,line", "-"} {
		if _, err := ParseSortSpec(bad); err == nil {
			t.Errorf("ParseSortSpec(%q) expected error", bad)
		}
	}

	if spec, err := ParseSortSpec(""); err != nil || len(spec.Keys) != 0 {
		t.Fatalf("empty spec = %+v, %v", spec, err)
	}
}

func row(path, kind string, line, byteStart int) output.Row {
	return output.Row{
		Path: path,
		Kind: kind,
		Span: model.Span{
			Start:     model.Position{Line: line, Col: 1},
			ByteStart: byteStart,
		},
	}
}

func TestApplySortDefaultOrder(t *testing.T) {
	rows := []output.Row{
		row("b.go", "TODO", 1, 10),
		row("a.go", "FIXME", 5, 90),
		row("a.go", "TODO", 2, 30),
	}
	ApplySort(rows, SortSpec{})
	if rows[0].Path != "a.go" || rows[0].Span.ByteStart != 30 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[2].Path != "b.go" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestApplySortByKindDescending(t *testing.T) {
	rows := []output.Row{
		row("a.go", "FIXME", 1, 0),
		row("a.go", "TODO", 2, 10),
		row("b.go", "TODO", 3, 20),
	}
	spec, err := ParseSortSpec("-kind,line")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ApplySort(rows, spec)
	if rows[0].Kind != "TODO" || rows[0].Span.Start.Line != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[2].Kind != "FIXME" {
		t.Fatalf("rows = %+v", rows)
	}
}
