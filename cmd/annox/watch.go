package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phyten/annox/internal/detect"
	"github.com/phyten/annox/internal/host"
	"github.com/phyten/annox/internal/output"
	"github.com/phyten/annox/internal/termcolor"
)

// watchCmd は初回走査のあと、ファイルと設定の変更を監視して
// 変わったものだけを再走査し、結果を NDJSON で流し続けます。
func watchCmd(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "config file (overrides discovery)")
		langs      = fs.String("lang", "", "restrict to these language tags (comma separated)")
	)
	_ = fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	set, cfgFile, err := loadSettings(*configPath)
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

	allow := detect.CanonicalList(splitComma(*langs))
	files, err := collectFiles(paths, allow)
	if err != nil {
		log.Fatal(err)
	}

	rescanAll := func() {
		rows, _ := scanFiles(session, files, allow, false)
		ApplySort(rows, SortSpec{})
		if err := output.WriteNDJSON(os.Stdout, rows); err != nil {
			log.Fatal(err)
		}
	}
	rescanOne := func(path string) {
		rows, _ := scanFiles(session, []string{path}, allow, false)
		if err := output.WriteNDJSON(os.Stdout, rows); err != nil {
			log.Fatal(err)
		}
	}

	rescanAll()

	watcher, err := host.NewWatcher(cfgFile, files)
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	watcher.Start(ctx)

	if cfgFile != "" {
		log.Printf("watching %d files (config: %s)", len(files), cfgFile)
	} else {
		log.Printf("watching %d files", len(files))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events():
			if !ok {
				return
			}
			if ev.Config {
				next, _, err := loadSettings(*configPath)
				if err != nil {
					log.Printf("config reload failed: %v (keeping previous)", err)
					continue
				}
				if err := session.Configure(next); err != nil {
					log.Printf("config rejected: %v (keeping previous)", err)
					continue
				}
				log.Printf("config reloaded: %s", ev.Path)
				rescanAll()
				continue
			}
			rescanOne(ev.Path)
		}
	}
}
