package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			serveCmd(os.Args[2:])
			return
		case "watch":
			watchCmd(os.Args[2:])
			return
		case "help", "-h", "--help":
			usage()
			return
		}
	}
	scanCmd(os.Args[1:])
}

func usage() {
	fmt.Fprintln(os.Stderr, `annox - annotation highlighter

Usage:
  annox [flags] [path ...]        scan files and list annotations
  annox watch [flags] [path ...]  rescan on file or config changes
  annox serve [flags]             web UI and JSON API

Run "annox -h", "annox watch -h" or "annox serve -h" for flags.`)
}
