package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/browser"

	"github.com/phyten/annox/internal/host"
	"github.com/phyten/annox/internal/termcolor"
	"github.com/phyten/annox/internal/web"
)

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		port       = fs.Int("p", 8080, "port")
		root       = fs.String("root", "", "serve scans of files under this directory (empty: POST only)")
		configPath = fs.String("config", "", "config file (overrides discovery)")
		theme      = fs.String("theme", "auto", "auto|dark|light")
		open       = fs.Bool("open", false, "open the UI in a browser")
	)
	_ = fs.Parse(args)

	set, cfgFile, err := loadSettings(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	// スタイルはブラウザ側で解釈するため端末向けの割り当ては行わない
	session := host.NewSession(nil)
	if err := session.Configure(set); err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	resolved := *theme
	if resolved == "auto" {
		if termcolor.DetectScheme(termcolor.EnvMap(os.Environ())) == termcolor.SchemeLight {
			resolved = "light"
		} else {
			resolved = "dark"
		}
	}

	app := &web.App{Session: session, Root: *root, Theme: resolved}
	mux := http.NewServeMux()
	app.Register(mux)

	addr := fmt.Sprintf(":%d", *port)
	url := fmt.Sprintf("http://localhost%s/", addr)
	if cfgFile != "" {
		log.Printf("annox serve listening on %s (config: %s)", addr, cfgFile)
	} else {
		log.Printf("annox serve listening on %s (built-in defaults)", addr)
	}
	if *root != "" {
		log.Printf("serving scans of %s", mustAbs(*root))
	}
	if *open {
		if err := browser.OpenURL(url); err != nil {
			log.Printf("could not open browser: %v", err)
		}
	}
	log.Fatal(http.ListenAndServe(addr, mux))
}

func mustAbs(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
