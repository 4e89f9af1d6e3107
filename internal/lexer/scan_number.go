package lexer

import "loxvm/internal/token"

// scanNumber accepts decimal digits and, per the spec, at most one
// fractional part: a '.' is only consumed as a decimal point when it is
// followed by a digit, so method calls on number literals (not part of
// Lox, but kept for scanner symmetry with property access) never get
// swallowed here.
func (l *Lexer) scanNumber() token.Token {
	start := l.c.off
	for isDigit(l.c.peek()) {
		l.c.advance()
	}
	if l.c.peek() == '.' && isDigit(l.c.peekAt(1)) {
		l.c.advance() // consume '.'
		for isDigit(l.c.peek()) {
			l.c.advance()
		}
	}
	return l.make(token.Number, l.c.src[start:l.c.off])
}
