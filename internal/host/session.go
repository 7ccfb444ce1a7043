package host

import (
	"sync"

	"github.com/phyten/annox/internal/config"
	"github.com/phyten/annox/internal/registry"
	"github.com/phyten/annox/internal/scan"
)

// Session は現在有効なレジストリ世代を保持し、再構成と走査を仲介します。
// 再構成が失敗した場合は直前の世代がそのまま使われ続けます。
// 走査は開始時点の世代スナップショットを使うため、並行する再構成の
// 影響を受けません。
type Session struct {
	alloc registry.StyleAllocator

	mu  sync.Mutex
	reg *registry.Registry
}

func NewSession(alloc registry.StyleAllocator) *Session {
	return &Session{alloc: alloc}
}

// Configure は設定からレジストリを再構築し、成功時のみ入れ替えます。
// 置き換えられた世代のスタイルハンドルはここで解放されます。
func (s *Session) Configure(set config.Settings) error {
	next, err := registry.Rebuild(set.Annotations, set.Languages, s.alloc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	prev := s.reg
	s.reg = next
	s.mu.Unlock()
	prev.Release()
	return nil
}

// Registry returns the active generation, or nil before the first
// successful Configure.
func (s *Session) Registry() *registry.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg
}

// Scan runs one document against the active generation.
func (s *Session) Scan(doc scan.Document, sink scan.Sink) error {
	reg := s.Registry()
	if reg == nil {
		return registry.ErrConfigMissing
	}
	return scan.Run(doc, reg, sink)
}

// Close releases the active generation.
func (s *Session) Close() {
	s.mu.Lock()
	reg := s.reg
	s.reg = nil
	s.mu.Unlock()
	reg.Release()
}
