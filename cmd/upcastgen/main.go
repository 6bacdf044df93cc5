// Command upcastgen generates transitive upcast conversions for hierarchy
// descriptions.
//
// Usage:
//
//	upcastgen [flags] [pattern ...]
//
// Patterns select description files, directories, or recursive "dir/..."
// walks. Without patterns the current directory is processed. One file per
// directory is generated, merging every description the directory holds.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"golang.org/x/sys/unix"

	upcastgeninternal "github.com/sublee/upcastgen/internal/upcastgen"
)

// Version is the upcastgen version, replaceable at build time:
//
//	go build -ldflags "-X main.Version=..."
var Version = "dev"

var (
	pFlag = flag.String("p", "", "package name for generated files (default: sniffed per directory)")
	oFlag = flag.String("o", "upcast_gen.go", "output file name")
	cFlag = flag.String("c", "auto", "colorize diagnostics (auto|always|never)")
)

func init() {
	upcastgeninternal.Version = Version
}

func main() {
	flag.Parse()

	color := false
	switch *cFlag {
	case "auto":
		color = isatty()
	case "always":
		color = true
	case "never":
	default:
		fmt.Fprintf(os.Stderr, "invalid -c value: %s\n", *cFlag)
		os.Exit(1)
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	outs, err := upcastgeninternal.Main(wd, *pFlag, *oFlag, flag.Args())
	if err != nil {
		message := err.Error()
		if color {
			message = colorize(message)
		}
		fmt.Fprintln(os.Stderr, message)
		os.Exit(1)
	}

	for _, out := range slices.Sorted(maps.Keys(outs)) {
		path := out
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}
		if err := os.WriteFile(path, outs[out], 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Generated:", out)
	}
}

// isatty reports whether stdout is a terminal.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var rePos = regexp.MustCompile(`(?m)^\S+?:\d+:\d+:`)

// colorize highlights the file positions in diagnostics.
func colorize(message string) string {
	const (
		red   = "\033[31m"
		reset = "\033[0m"
	)
	return rePos.ReplaceAllStringFunc(message, func(pos string) string {
		return red + pos + reset
	})
}
