package driver

import (
	"fortio.org/safecast"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/lexer"
	"lifeline/internal/parser"
	"lifeline/internal/source"
	"lifeline/internal/token"
)

// Frontend is what the tokenize and parse commands share: one loaded file
// and the diagnostics reported while reading it.
type Frontend struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
}

type TokenizeResult struct {
	Frontend
	Tokens []token.Token
}

type ParseResult struct {
	Frontend
	AST *ast.File
}

func loadFrontend(path string, maxDiagnostics int) (Frontend, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return Frontend{}, err
	}
	return Frontend{FileSet: fs, File: fs.Get(id), Bag: diag.NewBag(maxDiagnostics)}, nil
}

func (f Frontend) newLexer() *lexer.Lexer {
	return lexer.New(f.File, lexer.Options{Reporter: diag.BagReporter{Bag: f.Bag}})
}

// Tokenize lexes path up to and including EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fe, err := loadFrontend(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &TokenizeResult{Frontend: fe, Tokens: fe.newLexer().All()}, nil
}

// Parse runs the lexer and parser only; no name resolution happens.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	fe, err := loadFrontend(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := parser.ParseFile(fe.newLexer(), ast.NewBuilder(nil, 0), parser.Options{
		Reporter:  diag.BagReporter{Bag: fe.Bag},
		MaxErrors: maxErrors,
	})
	fe.Bag.Sort()
	return &ParseResult{Frontend: fe, AST: res.File}, nil
}
