package parser

import (
	"fmt"

	"nkl/internal/diag"
	"nkl/internal/source"
	"nkl/internal/token"
)

// advance съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat съедает токен kind, если он следующий.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect ожидает конкретный токен. Если его нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.unexpected(diag.SynExpectToken, fmt.Sprintf("expected %q", k.Spelling()))
	return token.Token{Kind: token.Invalid}, false
}

func (p *Parser) expectIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.unexpected(diag.SynExpectIdentifier, "expected identifier")
	return token.Token{Kind: token.Invalid}, false
}

// expectSeparator: после выражения нужен перевод строки или ';',
// либо закрывающая скобка/EOF, которые съест вызывающий.
func (p *Parser) expectSeparator() bool {
	switch p.lx.Peek().Kind {
	case token.Newline, token.Semicolon:
		p.advance()
		return true
	case token.RParen, token.RBrace, token.RBracket, token.EOF:
		return true
	}
	p.unexpected(diag.SynExpectToken, "expected newline")
	return false
}

func (p *Parser) skipSeparators() {
	for p.at(token.Newline) || p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// unexpected репортит ошибку на текущем токене, дописывая что получили.
func (p *Parser) unexpected(code diag.Code, msg string) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Invalid:
		// лексер уже отрепортил
		p.failed = true
		return
	case token.EOF:
		p.report(diag.SynUnexpectedEOF, p.eofSpan(), msg+", got end of file")
		return
	case token.Newline:
		msg += ", got newline"
	default:
		msg += fmt.Sprintf(", got %q", tok.Text)
	}
	p.report(code, tok.Span, msg)
}

// eofSpan указывает сразу за последним съеденным токеном.
func (p *Parser) eofSpan() source.Span {
	return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
