package model

// Position は 1 始まりの行・桁位置を表します。
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Span は 1 件の装飾範囲を行・桁・バイトオフセットで表します。
type Span struct {
	Start     Position `json:"start"`
	End       Position `json:"end"`
	ByteStart int      `json:"byte_start"`
	ByteEnd   int      `json:"byte_end"`
}

// Hover は装飾に付随するホバー表示の内容です。
// Trusted が真のときはアイコンやマークアップを含む Markdown として描画されます。
type Hover struct {
	Markdown string `json:"markdown"`
	Trusted  bool   `json:"trusted"`
}

// Decoration は 1 件のアノテーション検出結果（範囲＋任意のホバー）を表します。
type Decoration struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Span  Span   `json:"span"`
	Hover *Hover `json:"hover,omitempty"`
}
