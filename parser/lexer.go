package parser

import (
	"strings"
)

// Ensure EOF is defined
const eof = 0

// Lexer walks a source string rune by rune producing Tokens.
type Lexer struct {
	runes []rune
	pos   int // index of the next unread rune
	line  int
	buf   strings.Builder // Temporary buffer for scanned text

	// Line the current token started on
	tokenStartLine int
}

// NewLexer creates a new lexer instance
func NewLexer(source string) *Lexer {
	return &Lexer{runes: []rune(source), line: 1}
}

// Tokenize scans the whole source.  The returned slice always ends with an
// EOF token unless a fatal ScanError occurs.
func Tokenize(source string) ([]Token, error) {
	l := NewLexer(source)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// Line returns the line the lexer is currently on.
func (l *Lexer) Line() int {
	return l.line
}

// --- Rune Reading Helpers (with line tracking) ---
func (l *Lexer) read() rune {
	r := l.peek()
	if r == eof {
		return eof
	}
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) peekN(nthchar int) rune {
	if l.pos+nthchar >= len(l.runes) {
		return eof
	}
	return l.runes[l.pos+nthchar]
}

func (l *Lexer) peek() rune {
	return l.peekN(0)
}

func (l *Lexer) hasPrefix(prefix string) bool {
	for i, r := range []rune(prefix) {
		if l.peekN(i) != r {
			return false
		}
	}
	return true
}

func (l *Lexer) readTill(stop rune) {
	for r := l.peek(); r != eof && r != stop; r = l.peek() {
		l.read()
	}
}

// --- Scanning Functions ---
func (l *Lexer) skipWhitespace() {
	for {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.read()
		case l.hasPrefix("//"):
			l.readTill('\n')
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) scanIdentifierOrKeyword() Token {
	l.buf.Reset()
	for r := l.peek(); isIdentStart(r) || isDigit(r); r = l.peek() {
		l.buf.WriteRune(l.read())
	}
	text := l.buf.String()
	if IsKeyword(text) {
		return l.token(Keyword, text)
	}
	return l.token(Identifier, text)
}

// scanNumber reads digits with at most one fractional part.  A '.' not
// followed by a digit is left for the member access operator.
func (l *Lexer) scanNumber() Token {
	l.buf.Reset()
	hasDecimal := false
	for r := l.peek(); r != eof; r = l.peek() {
		if isDigit(r) {
			l.buf.WriteRune(l.read())
		} else if r == '.' && !hasDecimal && isDigit(l.peekN(1)) {
			hasDecimal = true
			l.buf.WriteRune(l.read())
		} else {
			break
		}
	}
	return l.token(Number, l.buf.String())
}

// scanString reads a double quoted string.  There are no escapes and
// embedded newlines are kept.
func (l *Lexer) scanString() (Token, error) {
	l.buf.Reset()
	l.read() // Consume opening '"'
	for {
		r := l.read()
		if r == eof {
			return Token{}, &ScanError{Err: ErrUnterminatedString, Line: l.tokenStartLine}
		}
		if r == '"' {
			break
		}
		l.buf.WriteRune(r)
	}
	return l.token(String, l.buf.String()), nil
}

func (l *Lexer) token(kind TokenKind, text string) Token {
	return Token{Kind: kind, Text: text, Line: l.tokenStartLine}
}

// twoCharMarks are tried before falling back to a single character mark.
var twoCharMarks = []string{"==", "!=", "<=", ">=", "&&", "||", "|>", "=>"}

// Next returns the next token, or a ScanError if the input has a character
// that no rule matches.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	l.tokenStartLine = l.line

	r := l.peek()
	switch {
	case r == eof:
		return l.token(EOF, ""), nil
	case isIdentStart(r):
		return l.scanIdentifierOrKeyword(), nil
	case isDigit(r):
		return l.scanNumber(), nil
	case r == '"':
		return l.scanString()
	}

	for _, op := range twoCharMarks {
		if l.hasPrefix(op) {
			l.read()
			l.read()
			return l.token(Mark, op), nil
		}
	}

	switch r {
	case '(', ')', '{', '}', '[', ']', ',', '.', ':', ';',
		'+', '-', '*', '/', '%', '<', '>', '=', '!', '&', '|':
		l.read()
		return l.token(Mark, string(r)), nil
	}
	return Token{}, &ScanError{Err: ErrUnexpectedChar, Char: r, Line: l.line}
}
