package host

import (
	"fmt"
	"os"

	"github.com/phyten/annox/internal/detect"
	"github.com/phyten/annox/internal/model"
)

// FileDocument は走査対象の 1 バッファです。テキストと行インデックスを
// 読み込み時に固定し、以後は変更しません。内容が変わったら開き直します。
type FileDocument struct {
	path  string
	tag   string
	text  string
	index *model.LineIndex
}

// Open はファイルを読み込み、パスと内容から言語タグを推定した
// ドキュメントを返します。
func Open(path string) (*FileDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	text := string(data)
	return &FileDocument{
		path:  path,
		tag:   detect.Language(path, data),
		text:  text,
		index: model.NewLineIndex(text),
	}, nil
}

// NewDocument はメモリ上の内容からドキュメントを作ります。
// 言語タグが空の場合はパスから推定します。
func NewDocument(path, tag, text string) *FileDocument {
	if tag == "" {
		tag = detect.Language(path, []byte(text))
	}
	return &FileDocument{
		path:  path,
		tag:   tag,
		text:  text,
		index: model.NewLineIndex(text),
	}
}

func (d *FileDocument) Text() string        { return d.text }
func (d *FileDocument) LanguageTag() string { return d.tag }
func (d *FileDocument) Path() string        { return d.path }

func (d *FileDocument) PositionFor(offset int) model.Position {
	return d.index.PositionFor(offset)
}
