// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package formula

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNot
	tokAnd
	tokOr
	tokImplies
	tokIff
	tokLParen
	tokRParen
)

var tokenNames = [9]string{
	tokEOF:     "end of input",
	tokIdent:   "identifier",
	tokNot:     "'~'",
	tokAnd:     "'&'",
	tokOr:      "'|'",
	tokImplies: "'->'",
	tokIff:     "'<->'",
	tokLParen:  "'('",
	tokRParen:  "')'",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// tokenize splits text into tokens, the last one being tokEOF.
func tokenize(text string) ([]token, error) {
	var res []token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case isSpace(c):
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(text) && isIdentPart(text[j]) {
				j++
			}
			res = append(res, token{tokIdent, text[i:j], i})
			i = j
		case c == '~':
			res = append(res, token{tokNot, "~", i})
			i++
		case c == '&':
			res = append(res, token{tokAnd, "&", i})
			i++
		case c == '|':
			res = append(res, token{tokOr, "|", i})
			i++
		case c == '(':
			res = append(res, token{tokLParen, "(", i})
			i++
		case c == ')':
			res = append(res, token{tokRParen, ")", i})
			i++
		case c == '-' && i+1 < len(text) && text[i+1] == '>':
			res = append(res, token{tokImplies, "->", i})
			i += 2
		case c == '<' && i+2 < len(text) && text[i+1] == '-' && text[i+2] == '>':
			res = append(res, token{tokIff, "<->", i})
			i += 3
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	res = append(res, token{tokEOF, "", len(text)})
	return res, nil
}
