package upcastgeninternal

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
	"golang.org/x/tools/imports"

	"github.com/sublee/upcastgen"
)

// DescriptionExt is the file extension of hierarchy descriptions.
const DescriptionExt = ".upcast"

// Main is the entry point for the upcastgen command. wd is the working
// directory; relative patterns resolve against it and output keys are
// relative to it. pkgName overrides the package name of every output; when
// empty the name is sniffed from sibling Go files, falling back to the
// directory name. outFile names the file generated per directory. patterns
// select description files, directories, or recursive "dir/..." walks; no
// patterns means the working directory.
//
// It returns the generated code keyed by output path. Directories whose
// descriptions derive nothing produce no entry. On any error, no code is
// returned and the error lists every failure, sorted.
func Main(wd, pkgName, outFile string, patterns []string) (map[string][]byte, error) {
	files, err := discover(wd, patterns)
	if err != nil {
		return nil, err
	}

	// Each directory merges its descriptions into one generated file.
	dirs := linkedhashmap.New()
	for _, f := range files {
		dir := filepath.Dir(f)
		group, _ := dirs.Get(dir)
		if group == nil {
			group = []string(nil)
		}
		dirs.Put(dir, append(group.([]string), f))
	}

	outs := make(map[string][]byte)
	var errs error
	it := dirs.Iterator()
	for it.Next() {
		dir := it.Key().(string)
		group := it.Value().([]string)

		pkg := pkgName
		if pkg == "" {
			pkg = packageName(dir, outFile)
		}

		g := New(pkg)
		ok := true
		for _, f := range group {
			src, err := os.ReadFile(f)
			if err != nil {
				errs = errors.Join(errs, err)
				ok = false
				continue
			}

			h, err := upcastgen.Parse(relPath(wd, f), src)
			if err != nil {
				errs = errors.Join(errs, err)
				ok = false
				continue
			}

			g.Add(filepath.Base(f), h)
		}
		if !ok {
			continue
		}

		code := g.Generate()
		if len(code) == 0 {
			continue
		}

		// Qualified labels pull in packages; goimports completes the import
		// block where they resolve. The code is already well-formed without
		// it, so failures keep the unprocessed bytes.
		if processed, err := imports.Process(filepath.Join(dir, outFile), code, nil); err == nil {
			code = processed
		}

		outs[filepath.Join(relPath(wd, dir), outFile)] = code
	}
	if errs != nil {
		return nil, reorderErrors(errs)
	}

	return outs, nil
}

// discover expands patterns into description file paths, deduplicated in
// first-seen order.
func discover(wd string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	seen := linkedhashset.New()
	for _, pattern := range patterns {
		rest, recursive := strings.CutSuffix(pattern, "/...")
		if recursive && rest == "" {
			rest = "."
		}

		path := rest
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pattern %q: %w", pattern, err)
		}

		switch {
		case !info.IsDir():
			if recursive {
				return nil, fmt.Errorf("pattern %q is not a directory", pattern)
			}
			seen.Add(path)

		case recursive:
			err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if p != path && skipDir(d.Name()) {
						return filepath.SkipDir
					}
					return nil
				}
				if filepath.Ext(d.Name()) == DescriptionExt {
					seen.Add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}

		default:
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !e.IsDir() && filepath.Ext(e.Name()) == DescriptionExt {
					seen.Add(filepath.Join(path, e.Name()))
				}
			}
		}
	}

	if seen.Size() == 0 {
		return nil, fmt.Errorf("no description files found: %v", patterns)
	}

	files := make([]string, 0, seen.Size())
	for _, f := range seen.Values() {
		files = append(files, f.(string))
	}
	return files, nil
}

// skipDir reports directory names the Go tool convention hides from "..."
// walks.
func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// packageName sniffs the package name for a directory from its Go files,
// falling back to a sanitized directory name. The output file itself and
// test files do not count.
func packageName(dir, outFile string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		entries = nil
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") || name == outFile {
			continue
		}

		f, err := parser.ParseFile(token.NewFileSet(), filepath.Join(dir, name), nil, parser.PackageClauseOnly)
		if err != nil {
			continue
		}
		return f.Name.Name
	}

	base := filepath.Base(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		base = filepath.Base(abs)
	}

	var b strings.Builder
	for _, r := range base {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	name := strings.TrimLeft(b.String(), "0123456789")
	if name == "" {
		name = "upcast"
	}
	return name
}

// relPath returns path relative to wd when possible, or path unchanged.
func relPath(wd, path string) string {
	if rel, err := filepath.Rel(wd, path); err == nil {
		return rel
	}
	return path
}

// reorderErrors flattens joined errors and sorts them by message, keeping
// reports deterministic regardless of processing order.
func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			list = append(list, u.Unwrap()...)
			list[i] = nil
		}
	}
	list = slices.DeleteFunc(list, func(err error) bool { return err == nil })

	slices.SortFunc(list, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})
	return errors.Join(list...)
}
