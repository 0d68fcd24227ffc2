package commands

import (
	"io"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/styles"
)

var weaLexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "WEA-Sharp",
		Aliases:   []string{"wea"},
		Filenames: []string{"*.wea"},
	},
	chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Whitespace},
			{Pattern: `//[^\n]*`, Type: chroma.CommentSingle},
			{Pattern: `"[^"]*"`, Type: chroma.LiteralString},
			{Pattern: `\d+(\.\d+)?`, Type: chroma.LiteralNumber},
			{Pattern: chroma.Words(``, `\b`, "dogru", "yanlis", "bos"), Type: chroma.KeywordConstant},
			{Pattern: chroma.Words(``, `\b`, "wea_unit", "wea_flow"), Type: chroma.KeywordDeclaration},
			{Pattern: chroma.Words(``, `\b`,
				"wea_verify", "wea_else", "wea_emit", "wea_read", "wea_cycle",
				"wea_eman", "wea_fail", "wea_return", "is_key", "foreach", "in",
				"break", "continue"), Type: chroma.Keyword},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*(?=\s*\()`, Type: chroma.NameFunction},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Type: chroma.Name},
			{Pattern: `\|>|=>|==|!=|<=|>=|&&|\|\||[-+*/%<>=!]`, Type: chroma.Operator},
			{Pattern: `[()\[\]{},.:;]`, Type: chroma.Punctuation},
			{Pattern: `.`, Type: chroma.Error},
		},
	},
)

// highlight writes source with terminal colors in the named style.
func highlight(w io.Writer, source, style string) error {
	iterator, err := weaLexer.Tokenise(nil, source)
	if err != nil {
		return err
	}
	return formatters.Get("terminal256").Format(w, styles.Get(style), iterator)
}
