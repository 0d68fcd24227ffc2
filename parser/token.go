package parser

import "fmt"

type TokenKind int

const (
	EOF TokenKind = iota
	Keyword
	Identifier
	Number
	String
	Mark // operators and punctuation
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Keyword:
		return "Keyword"
	case Identifier:
		return "Identifier"
	case Number:
		return "Number"
	case String:
		return "String"
	case Mark:
		return "Mark"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexeme.  For strings Text holds the contents without the
// surrounding quotes.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case String:
		return fmt.Sprintf("%q", t.Text)
	}
	return fmt.Sprintf("'%s'", t.Text)
}

var keywords = map[string]bool{
	"wea_flow":   true,
	"wea_unit":   true,
	"wea_verify": true,
	"wea_else":   true,
	"wea_emit":   true,
	"wea_read":   true,
	"wea_cycle":  true,
	"wea_eman":   true,
	"wea_fail":   true,
	"wea_return": true,
	"is_key":     true,
	"foreach":    true,
	"in":         true,
	"break":      true,
	"continue":   true,
	"dogru":      true,
	"yanlis":     true,
	"bos":        true,
}

// IsKeyword reports whether name is reserved.
func IsKeyword(name string) bool {
	return keywords[name]
}

// Keywords that begin a statement.  The parser resynchronizes on these.
var statementKeywords = map[string]bool{
	"wea_unit":   true,
	"wea_flow":   true,
	"wea_verify": true,
	"wea_emit":   true,
	"wea_read":   true,
	"wea_cycle":  true,
	"wea_eman":   true,
	"foreach":    true,
	"wea_return": true,
	"break":      true,
	"continue":   true,
}
