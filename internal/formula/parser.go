// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package formula

import "fmt"

// parser is a recursive descent parser with one function per precedence
// level, from iff (lowest) to negation (highest).
type parser struct {
	tokens []token
	pos    int
}

// Parse returns the syntax tree of text. The whole input must be consumed;
// otherwise the result is a *SyntaxError.
func Parse(text string) (*Expr, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	e, err := p.iff()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s after expression", tok.kind)
	}
	return e, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, a ...interface{}) error {
	return &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf(format, a...)}
}

func (p *parser) iff() (*Expr, error) {
	left, err := p.implies()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokIff {
		p.next()
		right, err := p.implies()
		if err != nil {
			return nil, err
		}
		left = Binary(OpIff, left, right)
	}
	return left, nil
}

func (p *parser) implies() (*Expr, error) {
	left, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokImplies {
		return left, nil
	}
	p.next()
	right, err := p.implies()
	if err != nil {
		return nil, err
	}
	return Binary(OpImplies, left, right), nil
}

func (p *parser) or() (*Expr, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = Binary(OpOr, left, right)
	}
	return left, nil
}

func (p *parser) and() (*Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = Binary(OpAnd, left, right)
	}
	return left, nil
}

func (p *parser) unary() (*Expr, error) {
	if p.peek().kind == tokNot {
		p.next()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Not(e), nil
	}
	return p.atom()
}

func (p *parser) atom() (*Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokIdent:
		return Var(tok.text), nil
	case tokLParen:
		e, err := p.iff()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.errorf(closing, "expected ')', found %s", closing.kind)
		}
		return e, nil
	}
	return nil, p.errorf(tok, "expected identifier or '(', found %s", tok.kind)
}
