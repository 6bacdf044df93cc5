// Package upcastgeninternal drives description parsing and code generation
// for the upcastgen command.
package upcastgeninternal

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/sublee/upcastgen"
	"github.com/sublee/upcastgen/internal/emit"
)

// Version is stamped into the generated-by header. The command sets it; the
// zero value leaves the header unversioned.
var Version string

// Generator renders the hierarchy descriptions of one package into a single
// generated file. Add every description first, then call Generate once.
// Generate never fails; every failure mode belongs to [upcastgen.Parse].
type Generator struct {
	pkgName  string
	sections []section
}

// section is the generation unit for one description file.
type section struct {
	name  string
	h     *upcastgen.Hierarchy
	convs []upcastgen.Conv
}

// New creates a [Generator] emitting into the named package.
func New(pkgName string) *Generator {
	return &Generator{pkgName: pkgName}
}

// Add registers one parsed description under a section name, usually the
// description's file name. Sections keep registration order in the output.
func (g *Generator) Add(name string, h *upcastgen.Hierarchy) {
	g.sections = append(g.sections, section{name: name, h: h, convs: h.Derive()})
}

// Generate renders the generated file for every added description. It
// returns nil when no description derived any conversion, in which case no
// file should be written.
func (g *Generator) Generate() []byte {
	total := 0
	for _, sec := range g.sections {
		total += len(sec.convs)
	}
	if total == 0 {
		return nil
	}

	// One namespace for the whole file. Direct names of every section are
	// reserved up front so a generated name never shadows a hand-written
	// conversion, not even one belonging to another section.
	ns := emit.NewNS()
	namer := emit.NewNamer(ns)
	for _, sec := range g.sections {
		namer.ReserveDirect(sec.h.Roots)
	}

	var buf bytes.Buffer
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/upcastgen%s. DO NOT EDIT.\n", versionSuffix)
	fmt.Fprintf(&buf, "\npackage %s\n", g.pkgName)

	for _, sec := range g.sections {
		if len(sec.convs) == 0 {
			continue
		}

		fmt.Fprintf(&buf, "\n// %s:\n", sec.name)
		for _, conv := range sec.convs {
			fmt.Fprintf(&buf, "\n")
			emit.WriteConv(&buf, namer, sec.h.Bindings, conv)
		}
	}

	// Formats the code. If it fails, the unformatted code is still usable.
	code := buf.Bytes()
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
