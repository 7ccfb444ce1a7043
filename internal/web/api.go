package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/phyten/annox/internal/config"
	"github.com/phyten/annox/internal/host"
	"github.com/phyten/annox/internal/model"
	"github.com/phyten/annox/internal/registry"
	"github.com/phyten/annox/internal/scan"
)

type kindPayload struct {
	Name     string         `json:"name"`
	Markdown bool           `json:"markdown"`
	Style    map[string]any `json:"style,omitempty"`
}

type kindResult struct {
	kindPayload
	Decorations []model.Decoration `json:"decorations"`
}

type scanResult struct {
	Path     string       `json:"path"`
	Language string       `json:"language"`
	Kinds    []kindResult `json:"kinds"`
}

type scanRequest struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

// collectSink は Paint 呼び出しを種別ごとの結果にまとめます。
// 空の種別も応答に含めます。クライアントはこれで消えた装飾を消去します。
type collectSink struct {
	limit int
	kinds []kindResult
}

func (s *collectSink) Paint(kind *registry.Kind, doc scan.Document, decs []model.Decoration) error {
	if s.limit > 0 && len(decs) > s.limit {
		decs = decs[:s.limit]
	}
	if decs == nil {
		decs = []model.Decoration{}
	}
	s.kinds = append(s.kinds, kindResult{
		kindPayload: kindPayload{Name: kind.Name, Markdown: kind.Markdown, Style: kind.Style},
		Decorations: decs,
	})
	return nil
}

func (a *App) kindsHandler(w http.ResponseWriter, r *http.Request) {
	reg := a.Session.Registry()
	if reg == nil {
		http.Error(w, "no configuration loaded", http.StatusServiceUnavailable)
		return
	}
	out := make([]kindPayload, 0, len(reg.Kinds()))
	for _, k := range reg.Kinds() {
		out = append(out, kindPayload{Name: k.Name, Markdown: k.Markdown, Style: k.Style})
	}
	writeJSON(w, out)
}

func (a *App) scanHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := config.ParseIntInRange(raw, "limit", 1, 100000)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit = n
	}

	var doc *host.FileDocument
	switch r.Method {
	case http.MethodPost:
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		doc = host.NewDocument(req.Path, req.Language, req.Text)
	case http.MethodGet:
		path := r.URL.Query().Get("path")
		if path == "" {
			http.Error(w, "path parameter required", http.StatusBadRequest)
			return
		}
		full, err := a.resolve(path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		doc, err = host.Open(full)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if tag := r.URL.Query().Get("lang"); tag != "" {
			doc = host.NewDocument(doc.Path(), tag, doc.Text())
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sink := &collectSink{limit: limit}
	if err := a.Session.Scan(doc, sink); err != nil {
		if errors.Is(err, registry.ErrConfigMissing) {
			http.Error(w, "no configuration loaded", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, scanResult{Path: doc.Path(), Language: doc.LanguageTag(), Kinds: sink.kinds})
}

// resolve はクライアント指定の相対パスを Root 配下のパスに解決します。
// Root 外への脱出は拒否します。
func (a *App) resolve(path string) (string, error) {
	if a.Root == "" {
		return "", errors.New("server-side scanning is disabled")
	}
	if filepath.IsAbs(path) {
		return "", errors.New("absolute paths are not allowed")
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errors.New("path escapes the served root")
	}
	return filepath.Join(a.Root, cleaned), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
