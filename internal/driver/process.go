package driver

import (
	"fmt"

	"cppbind/internal/ast"
	"cppbind/internal/diag"
	"cppbind/internal/observ"
	"cppbind/internal/parser"
	"cppbind/internal/source"
	"cppbind/internal/symbols"
	"cppbind/internal/tmpl"
)

// ProcessResult is the outcome of running a whole interface file:
// declarations registered, every instantiation request resolved and
// expanded, expansions attached to the tree.
type ProcessResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Tree     *parser.File
	Syms     *symbols.Symtab
	Recorder *tmpl.Recorder
	Bag      *diag.Bag
	Timings  *observ.Timer
}

// ProcessFile parses path and expands its instantiation directives.
func ProcessFile(path string, maxDiagnostics int) (*ProcessResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	tm := observ.NewTimer()
	idx := tm.Begin("parse")
	pr, err := parseFile(fs, fileID, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	tm.End(idx, "")
	return processParsed(pr, tm), nil
}

// ProcessBytes runs the pipeline over in-memory source, for tools and
// tests that do not go through the filesystem.
func ProcessBytes(name string, src []byte, maxDiagnostics int) (*ProcessResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	tm := observ.NewTimer()
	idx := tm.Begin("parse")
	pr, err := parseFile(fs, fileID, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	tm.End(idx, "")
	return processParsed(pr, tm), nil
}

func processParsed(pr *ParseResult, tm *observ.Timer) *ProcessResult {
	rep := diag.BagReporter{Bag: pr.Bag}
	tab := symbols.NewSymtab()
	idx := tm.Begin("register")
	RegisterDecls(tab, pr.Tree.Root, rep)
	tm.End(idx, "")

	rec := tmpl.NewRecorder()
	anon := 0
	idx = tm.Begin("expand")
	for _, d := range pr.Tree.Directives {
		expandDirective(tab, pr.Tree.Root, rec, rep, d, &anon)
	}
	tm.End(idx, fmt.Sprintf("%d instantiations", rec.Len()))
	return &ProcessResult{
		FileSet:  pr.FileSet,
		File:     pr.File,
		Tree:     pr.Tree,
		Syms:     tab,
		Recorder: rec,
		Bag:      pr.Bag,
		Timings:  tm,
	}
}

// expandDirective resolves one %template request, expands the chosen
// declaration and grafts the result onto the tree and symbol table.
func expandDirective(tab *symbols.Symtab, root *ast.Node, rec *tmpl.Recorder,
	rep diag.Reporter, d parser.Directive, anon *int) {
	ctx := tmpl.Context{Syms: tab, Rep: rep, Span: d.Span}

	parms := d.Parms
	if primary := tab.Clookup(d.Name); primary != nil && primary.Kind == ast.KindTemplate {
		parms = tmpl.ParmsExpand(d.Parms, primary)
	}
	key := tmpl.Key{Sym: d.Name, Args: parms.ArgString()}

	match := tmpl.Locate(ctx, d.Name, parms, d.SymName)
	if match == nil {
		// Repeated requests for an argument list that already expanded only
		// accumulate their use site.
		if rec.Lookup(key) != nil {
			rec.Record(key, tmpl.Instantiation{}, d.Span)
		}
		return
	}

	rname := d.SymName
	hidden := false
	if rname == "" {
		*anon++
		rname = fmt.Sprintf("__anon_%d", *anon)
		hidden = true
	}

	tscope := tab
	if ts, ok := match.Scope.(*symbols.Symtab); ok && ts != nil {
		tscope = ts
	}

	inst := match.Copy()
	tmpl.Expand(inst, rname, parms.Copy(), tscope)
	inst.SymName.Set(rname)
	inst.Hidden = hidden
	inst.Template = match
	inst.Span = d.Span
	root.AppendChild(inst)

	lookupName := symbols.ScopenameLast(inst.Name.String())
	if existing := tscope.Lookup(lookupName); existing != nil &&
		existing.Hidden && existing.CSymNext == nil {
		existing.CSymNext = inst
	}
	tscope.Add(lookupName, inst)
	if !hidden {
		tab.Add(rname, inst)
	}

	rec.Record(key, tmpl.Instantiation{
		Name:    d.Name,
		SymName: d.SymName,
		Args:    parms.ArgString(),
		Node:    inst,
	}, d.Span)
}
