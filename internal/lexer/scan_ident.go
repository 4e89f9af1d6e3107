package lexer

import "loxvm/internal/token"

func (l *Lexer) scanIdent() token.Token {
	start := l.c.off
	for isAlphaNumeric(l.c.peek()) {
		l.c.advance()
	}
	text := l.c.src[start:l.c.off]
	if kw, ok := token.LookupKeyword(text); ok {
		return l.make(kw, text)
	}
	return l.make(token.Ident, text)
}
