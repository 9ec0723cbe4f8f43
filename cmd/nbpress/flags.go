package main

import (
	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the render command.
type cliFlags struct {
	local         bool
	all           bool
	watch         bool
	preview       bool
	noExecute     bool
	includeSource bool
	workers       int
	verbose       bool
	version       bool
}

// parseFlags parses argv and returns the flags plus positional arguments
// (post names relative to the posts directory).
func parseFlags(argv []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("nbpress", flag.ContinueOnError)
	fs.Usage = func() {
		fs.PrintDefaults()
	}

	f := &cliFlags{}
	fs.BoolVar(&f.local, "local", false, "render into ./output without a site configuration")
	fs.BoolVar(&f.all, "all", false, "render every post in the posts directory")
	fs.BoolVar(&f.watch, "watch", false, "re-render posts when their sources change")
	fs.BoolVar(&f.preview, "preview", false, "also write a standalone HTML preview per post")
	fs.BoolVar(&f.noExecute, "no-execute", false, "skip code execution even when posts request it")
	fs.BoolVar(&f.includeSource, "include-source", false, "expose the source-repository link to the footer template")
	fs.IntVar(&f.workers, "workers", 0, "parallel renders for --all (0 = auto)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(argv[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
