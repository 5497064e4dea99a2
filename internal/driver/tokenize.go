package driver

import (
	"cppbind/internal/diag"
	"cppbind/internal/lexer"
	"cppbind/internal/source"
	"cppbind/internal/token"
)

// TokenizeResult carries the token stream of one interface file together
// with its diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a single interface file.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag, err := diag.NewBag(maxDiagnostics)
	if err != nil {
		return nil, err
	}
	lx := lexer.New(file, diag.BagReporter{Bag: bag})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.Tokens(),
		Bag:     bag,
	}, nil
}
