package driver

import (
	"nkl/internal/ast"
	"nkl/internal/diag"
	"nkl/internal/lexer"
	"nkl/internal/parser"
	"nkl/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	AST     *ast.File
	Failed  bool
	Bag     *diag.Bag
}

func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	builder, res := parseFile(file, bag)
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		AST:     res.File,
		Failed:  res.Failed,
		Bag:     bag,
	}, nil
}

func parseFile(file *source.File, bag *diag.Bag) (*ast.Builder, parser.Result) {
	rep := &diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(0)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	return builder, parser.ParseFile(file, lx, builder, parser.Options{Reporter: rep})
}
