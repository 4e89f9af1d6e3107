package lexer

// skipTrivia consumes whitespace and line comments, which never produce
// tokens. Lines are counted by cursor.advance as it crosses '\n'.
func (l *Lexer) skipTrivia() {
	for {
		switch l.c.peek() {
		case ' ', '\t', '\r', '\n':
			l.c.advance()
		case '/':
			if l.c.peekAt(1) == '/' {
				for !l.c.eof() && l.c.peek() != '\n' {
					l.c.advance()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// isDigit and isAlpha classify bytes for identifier and number scanning.
// Lox identifiers follow the usual C-like rule: letters/underscore to
// start, letters/digits/underscore to continue.
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaNumeric(b byte) bool { return isAlpha(b) || isDigit(b) }
