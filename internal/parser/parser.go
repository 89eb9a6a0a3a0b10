package parser

import (
	"nkl/internal/ast"
	"nkl/internal/diag"
	"nkl/internal/lexer"
	"nkl/internal/source"
	"nkl/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

type Result struct {
	File *ast.File
	// Failed is set once the first syntax error was reported; File then
	// holds only the items parsed before it.
	Failed bool
	Bag    *diag.Bag
}

// Parser хранит состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     *ast.File
	opts     Options
	failed   bool
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile: входная точка для разбора одного файла.
// Разбор останавливается на первой синтаксической ошибке.
func ParseFile(
	src *source.File,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	empty := source.Span{File: src.ID}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     &ast.File{Path: src.Path, Span: empty},
		opts:     opts,
		lastSpan: empty,
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File:   p.file,
		Failed: p.failed,
		Bag:    bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// parseItems: основной цикл верхнего уровня.
// file := sep* (expr (sep+ expr)*)? sep* EOF
func (p *Parser) parseItems() {
	start := p.lx.Peek().Span
	for {
		p.skipSeparators()
		if p.at(token.EOF) {
			break
		}
		id, ok := p.parseExpr()
		if !ok {
			return
		}
		p.file.Items = append(p.file.Items, id)
		if !p.expectSeparator() {
			return
		}
	}
	p.file.Span = start.Cover(p.lastSpan)
}
