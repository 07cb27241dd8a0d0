package odata

import (
	"fmt"
	"unicode"
)

// lexer works on runes so every reported position is a character offset.
type lexer struct {
	src []rune
	ch  rune // 0 once pos reaches len(src)
	pos int
}

func newLexer(src string) *lexer {
	l := &lexer{src: []rune(src)}
	l.setPos(0)

	return l
}

// Scan returns the position, kind and text of the next token. On a lexical
// error the token is illegal, the text carries the message and the position
// points at the offending character.
func (l *lexer) Scan() (int, Token, string) {
	for !l.atEnd() && unicode.IsSpace(l.ch) {
		l.next()
	}

	if l.atEnd() {
		return l.pos, end, ""
	}

	start := l.pos

	switch ch := l.ch; {
	case ch == '(':
		l.next()
		return start, openParen, "("
	case ch == ')':
		l.next()
		return start, closeParen, ")"
	case ch == ',':
		l.next()
		return start, comma, ","
	case ch == '-':
		l.next()
		return start, minus, "-"
	case ch == '/':
		l.next()
		return start, dot, "/"
	case ch == '\'':
		return l.scanString()
	case isIdentifierStart(ch):
		// the start character may not be a valid part (@)
		l.next()
		for !l.atEnd() && isIdentifierPart(l.ch) {
			l.next()
		}
		text := string(l.src[start:l.pos])
		if tok, ok := reserved[text]; ok {
			return start, tok, text
		}
		return start, identifier, text
	case isDigit(ch):
		return l.scanNumber()
	default:
		return start, illegal, fmt.Sprintf("Syntax error '%c'", ch)
	}
}

// scanString consumes a quoted literal. A doubled quote is an escaped quote;
// backslash has no special meaning. The returned text keeps the quotes.
func (l *lexer) scanString() (int, Token, string) {
	start := l.pos
	for {
		l.next()
		for !l.atEnd() && l.ch != '\'' {
			l.next()
		}
		if l.atEnd() {
			return start, illegal, "Unterminated string literal"
		}
		l.next()
		if l.ch != '\'' {
			break
		}
	}

	return start, stringLit, string(l.src[start:l.pos])
}

// scanNumber consumes an integer or real literal. Type suffixes are consumed
// but not included in the returned text: F/M/D force a real literal, L is
// accepted on integers only.
func (l *lexer) scanNumber() (int, Token, string) {
	start := l.pos
	tok := integerLit

	for isDigit(l.ch) {
		l.next()
	}

	if l.ch == '.' {
		tok = realLit
		l.next()
		if !isDigit(l.ch) {
			return l.pos, illegal, "Digit expected"
		}
		for isDigit(l.ch) {
			l.next()
		}
	}

	if l.ch == 'E' || l.ch == 'e' {
		tok = realLit
		l.next()
		if l.ch == '+' || l.ch == '-' {
			l.next()
		}
		if !isDigit(l.ch) {
			return l.pos, illegal, "Digit expected"
		}
		for isDigit(l.ch) {
			l.next()
		}
	}

	text := string(l.src[start:l.pos])

	switch l.ch {
	case 'F', 'f', 'M', 'm', 'D', 'd':
		tok = realLit
		l.next()
	case 'L', 'l':
		if tok == integerLit {
			l.next()
		}
	}

	return start, tok, text
}

// peek returns the character right after the last scanned token.
func (l *lexer) peek() rune {
	return l.ch
}

func (l *lexer) next() {
	if l.pos < len(l.src) {
		l.pos++
	}
	l.setPos(l.pos)
}

func (l *lexer) setPos(pos int) {
	l.pos = pos
	if pos < len(l.src) {
		l.ch = l.src[pos]
		return
	}
	l.ch = 0
}

func (l *lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func isIdentifierStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '@' || ch == '_'
}

func isIdentifierPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
