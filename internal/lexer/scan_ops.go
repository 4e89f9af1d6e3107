package lexer

import "loxvm/internal/token"

// scanOperator dispatches single- and double-character punctuators. It is
// only called once skipTrivia and identifier/number/string scanning have
// ruled themselves out.
func (l *Lexer) scanOperator(b byte) token.Token {
	switch b {
	case '(':
		return l.makeByte(token.LeftParen)
	case ')':
		return l.makeByte(token.RightParen)
	case '{':
		return l.makeByte(token.LeftBrace)
	case '}':
		return l.makeByte(token.RightBrace)
	case ',':
		return l.makeByte(token.Comma)
	case '.':
		return l.makeByte(token.Dot)
	case '-':
		return l.makeByte(token.Minus)
	case '+':
		return l.makeByte(token.Plus)
	case ';':
		return l.makeByte(token.Semicolon)
	case '*':
		return l.makeByte(token.Star)
	case '/':
		return l.makeByte(token.Slash)
	case '!':
		return l.makeTwoWay('=', token.BangEqual, token.Bang)
	case '=':
		return l.makeTwoWay('=', token.EqualEqual, token.Equal)
	case '<':
		return l.makeTwoWay('=', token.LessEqual, token.Less)
	case '>':
		return l.makeTwoWay('=', token.GreaterEqual, token.Greater)
	default:
		return token.Token{Kind: token.Error, Text: "Unexpected character.", Line: l.c.line}
	}
}

// makeByte builds a single-character token for the byte just peeked; the
// caller has not yet advanced past it.
func (l *Lexer) makeByte(k token.Kind) token.Token {
	start := l.c.off
	l.c.advance()
	return l.make(k, l.c.src[start:l.c.off])
}

// makeTwoWay builds `with` if the next byte equals second, else `without`.
func (l *Lexer) makeTwoWay(second byte, with, without token.Kind) token.Token {
	start := l.c.off
	l.c.advance()
	if l.c.match(second) {
		return l.make(with, l.c.src[start:l.c.off])
	}
	return l.make(without, l.c.src[start:l.c.off])
}
