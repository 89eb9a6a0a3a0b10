package parser

import (
	"nkl/internal/ast"
	"nkl/internal/diag"
	"nkl/internal/source"
	"nkl/internal/token"
)

// parseExpr разбирает одно выражение:
//
//	expr    := binding | operand
//	binding := Ident ':' ( ':' expr | '=' expr | operand [ ':' expr | '=' expr ] )
//	operand := '[' ']' operand | '[' '^' ']' operand | '[' operand ']' operand
//	         | '^' operand | postfix
//	postfix := primary ( '(' args ')' | '.' Ident )*
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	if p.at(token.Ident) {
		name := p.advance()
		if p.at(token.Colon) {
			return p.parseBinding(name)
		}
		return p.parsePostfix(p.arenas.Name(name.Span, name.Text))
	}
	return p.parseOperand()
}

// parseOperand разбирает выражение без связывания имени: позиции типов,
// элементов и возвращаемого значения. Иначе `x : int : 5` читалось бы как
// объявление x с типом `int : 5`.
func (p *Parser) parseOperand() (ast.ExprID, bool) {
	switch p.lx.Peek().Kind {
	case token.LBracket:
		return p.parseBracketType()
	case token.Caret:
		caret := p.advance()
		elem, ok := p.parseOperand()
		if !ok {
			return ast.ExprID{}, false
		}
		return p.arenas.PointerType(caret.Span.Cover(p.lastSpan), elem), true
	case token.Ident:
		name := p.advance()
		return p.parsePostfix(p.arenas.Name(name.Span, name.Text))
	}

	primary, ok := p.parsePrimary()
	if !ok {
		return ast.ExprID{}, false
	}
	return p.parsePostfix(primary)
}

// parseBinding: имя уже съедено, следующий токен ':'.
// `name :: v` и `name : T : v` дают константы, остальные формы дают объявления.
func (p *Parser) parseBinding(name token.Token) (ast.ExprID, bool) {
	p.advance() // ':'

	var typ ast.ExprID
	if !p.at(token.Colon) && !p.at(token.Assign) {
		t, ok := p.parseOperand()
		if !ok {
			return ast.ExprID{}, false
		}
		typ = t
	}

	if _, ok := p.eat(token.Colon); ok {
		value, ok := p.parseExpr()
		if !ok {
			return ast.ExprID{}, false
		}
		return p.arenas.Constant(name.Span.Cover(p.lastSpan), name.Span, name.Text, typ, value), true
	}

	var value ast.ExprID
	if _, ok := p.eat(token.Assign); ok {
		v, ok := p.parseExpr()
		if !ok {
			return ast.ExprID{}, false
		}
		value = v
	}
	return p.arenas.Declaration(name.Span.Cover(p.lastSpan), name.Span, name.Text, typ, value), true
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.IntLit(tok.Span, tok.Text), true
	case token.LParen:
		return p.parseParenthesised()
	case token.LBrace:
		return p.parseBlock()
	}
	p.unexpected(diag.SynUnexpectedToken, "expected expression")
	return ast.ExprID{}, false
}

func (p *Parser) parsePostfix(operand ast.ExprID) (ast.ExprID, bool) {
	start := p.arenas.Get(operand).Span
	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			p.advance()
			args, ok := p.parseList()
			if !ok {
				return ast.ExprID{}, false
			}
			operand = p.arenas.Call(start.Cover(p.lastSpan), operand, args)
		case token.Dot:
			p.advance()
			member, ok := p.expectIdent()
			if !ok {
				return ast.ExprID{}, false
			}
			operand = p.arenas.Member(start.Cover(p.lastSpan), operand, member.Span, member.Text)
		default:
			return operand, true
		}
	}
}

// parseList разбирает `expr, expr, ... )` после уже съеденной '('.
// Перевод строки внутри скобок допустим после '(' и ','.
func (p *Parser) parseList() ([]ast.ExprID, bool) {
	var list []ast.ExprID
	p.skipNewlines()
	for !p.at(token.RParen) {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		list = append(list, e)
		p.skipNewlines()
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		p.skipNewlines()
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	return list, true
}

// parseParenthesised различает по содержимому и хвосту:
//
//	( e )                  скобочное выражение
//	( decls ) -> R { ... } процедура
//	( decls ) -> R         тип процедуры
//	( decls )              тип структуры
func (p *Parser) parseParenthesised() (ast.ExprID, bool) {
	open := p.advance()
	list, ok := p.parseList()
	if !ok {
		return ast.ExprID{}, false
	}
	closeSpan := p.lastSpan

	if _, ok := p.eat(token.Arrow); ok {
		if !p.requireDeclarations(list) {
			return ast.ExprID{}, false
		}
		ret, ok := p.parseOperand()
		if !ok {
			return ast.ExprID{}, false
		}
		if !p.at(token.LBrace) {
			return p.arenas.ProcedureType(open.Span.Cover(p.lastSpan), list, ret), true
		}
		body, ok := p.parseBlock()
		if !ok {
			return ast.ExprID{}, false
		}
		return p.arenas.Procedure(open.Span.Cover(p.lastSpan), list, ret, body), true
	}

	span := open.Span.Cover(closeSpan)
	if len(list) == 1 && p.arenas.Get(list[0]).Kind != ast.ExprDeclaration {
		return p.arenas.Paren(span, list[0]), true
	}
	if len(list) == 0 {
		p.report(diag.SynUnexpectedToken, span, "empty parentheses must be followed by '->'")
		return ast.ExprID{}, false
	}
	if !p.requireDeclarations(list) {
		return ast.ExprID{}, false
	}
	return p.arenas.StructType(span, list), true
}

func (p *Parser) requireDeclarations(list []ast.ExprID) bool {
	for _, id := range list {
		e := p.arenas.Get(id)
		if e.Kind != ast.ExprDeclaration {
			p.report(diag.SynExpectDeclaration, e.Span, "expected a declaration for procedure parameter or struct field")
			return false
		}
	}
	return true
}

// parseBlock: '{' sep* (expr (sep+ expr)*)? sep* '}'
func (p *Parser) parseBlock() (ast.ExprID, bool) {
	open, ok := p.expect(token.LBrace)
	if !ok {
		return ast.ExprID{}, false
	}
	var list []ast.ExprID
	for {
		p.skipSeparators()
		if p.at(token.RBrace) {
			break
		}
		e, ok := p.parseExpr()
		if !ok {
			return ast.ExprID{}, false
		}
		list = append(list, e)
		if !p.expectSeparator() {
			return ast.ExprID{}, false
		}
		if p.at(token.RParen) || p.at(token.RBracket) || p.at(token.EOF) {
			p.expect(token.RBrace)
			return ast.ExprID{}, false
		}
	}
	p.advance() // '}'
	return p.arenas.Block(open.Span.Cover(p.lastSpan), list), true
}

// parseBracketType: `[]T`, `[^]T`, `[N]T`.
func (p *Parser) parseBracketType() (ast.ExprID, bool) {
	open := p.advance()
	build := func(mk func(source.Span, ast.ExprID) ast.ExprID) (ast.ExprID, bool) {
		elem, ok := p.parseOperand()
		if !ok {
			return ast.ExprID{}, false
		}
		return mk(open.Span.Cover(p.lastSpan), elem), true
	}

	if _, ok := p.eat(token.RBracket); ok {
		return build(p.arenas.SliceType)
	}
	if _, ok := p.eat(token.Caret); ok {
		if _, ok := p.expect(token.RBracket); !ok {
			return ast.ExprID{}, false
		}
		return build(p.arenas.MultipointerType)
	}

	length, ok := p.parseOperand()
	if !ok {
		return ast.ExprID{}, false
	}
	if _, ok := p.expect(token.RBracket); !ok {
		return ast.ExprID{}, false
	}
	return build(func(sp source.Span, elem ast.ExprID) ast.ExprID {
		return p.arenas.ArrayType(sp, length, elem)
	})
}
