package driver

import (
	"cppbind/internal/diag"
	"cppbind/internal/lexer"
	"cppbind/internal/parser"
	"cppbind/internal/source"
)

// ParseResult is a parsed interface file: the declaration tree, the
// instantiation directives and the diagnostics.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *parser.File
	Bag     *diag.Bag
}

// Parse lexes and parses a single interface file.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, fileID, maxDiagnostics)
}

func parseFile(fs *source.FileSet, id source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(id)
	bag, err := diag.NewBag(maxDiagnostics)
	if err != nil {
		return nil, err
	}
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, rep)
	tree := parser.New(lx, rep).Parse()
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Bag:     bag,
	}, nil
}
