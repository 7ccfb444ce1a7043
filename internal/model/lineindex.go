package model

import (
	"sort"
	"strings"
)

// LineIndex は行頭オフセットの一覧で、バイトオフセットから
// 行・桁（ともに 1 始まり）への変換を提供します。
type LineIndex struct {
	offsets []int
}

// NewLineIndex builds the index for text.
func NewLineIndex(text string) *LineIndex {
	offsets := make([]int, 0, strings.Count(text, "\n")+2)
	offsets = append(offsets, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &LineIndex{offsets: offsets}
}

// PositionFor converts a byte offset to a 1-based position.
func (ix *LineIndex) PositionFor(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	idx := sort.Search(len(ix.offsets), func(i int) bool { return ix.offsets[i] > offset })
	if idx == 0 {
		return Position{Line: 1, Col: offset + 1}
	}
	lineStart := ix.offsets[idx-1]
	return Position{Line: idx, Col: offset - lineStart + 1}
}
