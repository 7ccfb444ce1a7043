package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/phyten/annox/internal/detect"
	"github.com/phyten/annox/internal/host"
	"github.com/phyten/annox/internal/model"
	"github.com/phyten/annox/internal/output"
	"github.com/phyten/annox/internal/registry"
	"github.com/phyten/annox/internal/scan"
	"github.com/phyten/annox/internal/termcolor"
	"github.com/phyten/annox/internal/util"
)

// 走査対象から常に外すディレクトリ
var skipDirs = map[string]struct{}{
	".git": {}, ".hg": {}, ".svn": {}, "node_modules": {}, "vendor": {},
}

const maxFileSize = 4 << 20 // 4MiB

type scanFlags struct {
	configPath string
	output     string
	color      string
	fields     string
	sortSpec   string
	langs      string
	truncate   int
	noProgress bool
	forceProg  bool
}

func registerScanFlags(fs *flag.FlagSet, f *scanFlags) {
	fs.StringVar(&f.configPath, "config", "", "config file (overrides discovery)")
	fs.StringVar(&f.output, "output", "", "table|tsv|json|ndjson|markdown (default from config)")
	fs.StringVar(&f.color, "color", "", "auto|always|never (default from config)")
	fs.StringVar(&f.fields, "fields", output.DefaultFields, "comma separated columns: path,kind,line,col,span,value")
	fs.StringVar(&f.sortSpec, "sort", "", "sort keys, e.g. path,-line or kind")
	fs.StringVar(&f.langs, "lang", "", "restrict to these language tags (comma separated)")
	fs.IntVar(&f.truncate, "truncate", 0, "truncate value column to N display columns (table only, 0=unlimited)")
	fs.BoolVar(&f.noProgress, "no-progress", false, "disable progress")
	fs.BoolVar(&f.forceProg, "progress", false, "force progress even when piped")
}

func scanCmd(args []string) {
	fs := flag.NewFlagSet("annox", flag.ExitOnError)
	var f scanFlags
	registerScanFlags(fs, &f)
	_ = fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	set, _, err := loadSettings(f.configPath)
	if err != nil {
		log.Fatal(err)
	}
	sel, err := output.ResolveFields(f.fields)
	if err != nil {
		log.Fatal(err)
	}
	sortSpec, err := ParseSortSpec(f.sortSpec)
	if err != nil {
		log.Fatal(err)
	}
	enabled, err := colorEnabled(set.Color, f.color)
	if err != nil {
		log.Fatal(err)
	}

	session := host.NewSession(&termcolor.Allocator{
		Profile: termcolor.DetectProfile(termcolor.EnvMap(os.Environ())),
	})
	if err := session.Configure(set); err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	allow := detect.CanonicalList(splitComma(f.langs))
	files, err := collectFiles(paths, allow)
	if err != nil {
		log.Fatal(err)
	}

	rows, nErr := scanFiles(session, files, allow,
		util.ShouldShowProgress(f.forceProg, f.noProgress))
	ApplySort(rows, sortSpec)

	format := strings.ToLower(f.output)
	if format == "" {
		format = set.Output
	}
	if err := emit(os.Stdout, format, rows, sel, emitOptions{
		styles:   styleTable(session.Registry()),
		color:    enabled,
		truncate: f.truncate,
	}); err != nil {
		log.Fatal(err)
	}
	if nErr > 0 {
		os.Exit(1)
	}
}

// scanFiles は各ファイルを走査して行を集めます。読めないファイルは
// 警告して続行し、その件数を返します。
func scanFiles(session *host.Session, files, allow []string, progress bool) ([]output.Row, int) {
	prog := util.NewProgress(len(files), progress)
	rows := make([]output.Row, 0, 64)
	nErr := 0
	for i, path := range files {
		doc, err := host.Open(path)
		if err != nil {
			log.Printf("warning: %v", err)
			nErr++
			continue
		}
		if !detect.Allowed(doc.LanguageTag(), allow) {
			prog.Update(i + 1)
			continue
		}
		sink := &rowSink{}
		if err := session.Scan(doc, sink); err != nil {
			log.Printf("warning: scan %s: %v", path, err)
			nErr++
			continue
		}
		rows = append(rows, sink.rows...)
		prog.Update(i + 1)
	}
	prog.Done()
	return rows, nErr
}

type rowSink struct {
	rows []output.Row
}

func (s *rowSink) Paint(kind *registry.Kind, doc scan.Document, decs []model.Decoration) error {
	s.rows = append(s.rows, output.FromDecorations(doc.Path(), kind.Name, decs)...)
	return nil
}

type emitOptions struct {
	styles   map[string]termcolor.Style
	color    bool
	truncate int
}

func emit(w *os.File, format string, rows []output.Row, sel output.FieldSelection, opts emitOptions) error {
	switch format {
	case "json":
		return output.WriteJSON(w, rows)
	case "ndjson":
		return output.WriteNDJSON(w, rows)
	case "tsv":
		return output.WriteTSV(w, rows, sel)
	case "markdown":
		return output.WriteMarkdownTable(w, rows, sel)
	default: // table
		truncate := opts.truncate
		if truncate == 0 {
			if width, _, err := term.GetSize(int(w.Fd())); err == nil && width > 40 {
				truncate = width / 2
			}
		}
		return output.WriteTable(w, rows, output.TableOptions{
			Fields:        sel,
			Styles:        opts.styles,
			Color:         opts.color,
			MaxValueWidth: truncate,
		})
	}
}

// collectFiles expands the argument list into regular files, walking
// directories and skipping VCS/dependency trees and oversized files.
func collectFiles(paths, allow []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if _, skip := skipDirs[d.Name()]; skip {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if fi, err := d.Info(); err == nil && fi.Size() > maxFileSize {
				return nil
			}
			// 言語が特定できないファイルはディレクトリ走査では拾わない
			if detect.Language(path, nil) == "" && len(allow) == 0 {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func splitComma(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
